package ipinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{
			name:       "query parameter wins",
			query:      "?ip=203.0.113.9",
			forwarded:  "198.51.100.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "first forwarded hop",
			forwarded:  "198.51.100.1, 10.0.0.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "forwarded with spaces",
			forwarded:  " 198.51.100.7 ,10.0.0.1",
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.7",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "IPv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/ip"+tt.query, nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}

func TestUpstreamLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/203.0.113.9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"city": "Helsinki",
			"country": "Finland",
			"country_code": "FI",
			"asn": 1759,
			"asn_org": "Example Oy",
			"is_vpn": true
		}`))
	}))
	defer srv.Close()

	p := NewUpstream(srv.URL, 2*time.Second)
	info, err := p.Lookup(context.Background(), "203.0.113.9")
	require.NoError(t, err)

	// The record is relayed; ip and source are filled in locally.
	assert.Equal(t, "203.0.113.9", info.IP)
	assert.Equal(t, "upstream", info.Source)
	assert.Equal(t, "Helsinki", info.City)
	assert.Equal(t, "FI", info.CountryCode)
	assert.Equal(t, uint(1759), info.ASN)
	assert.True(t, info.IsVPN)
	assert.False(t, info.IsTor)
}

func TestUpstreamLookupErrors(t *testing.T) {
	errorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer errorSrv.Close()

	garbageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer garbageSrv.Close()

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadSrv.URL
	deadSrv.Close()

	tests := []struct {
		name string
		url  string
		ip   string
	}{
		{name: "invalid ip", url: errorSrv.URL, ip: "not-an-ip"},
		{name: "upstream error status", url: errorSrv.URL, ip: "203.0.113.9"},
		{name: "upstream garbage body", url: garbageSrv.URL, ip: "203.0.113.9"},
		{name: "upstream unreachable", url: deadURL, ip: "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewUpstream(tt.url, time.Second)
			_, err := p.Lookup(context.Background(), tt.ip)
			assert.Error(t, err)
		})
	}
}

func TestNewGeoIPMissingDatabases(t *testing.T) {
	_, err := NewGeoIP("testdata/missing-city.mmdb", "testdata/missing-asn.mmdb")
	assert.Error(t, err)
}
