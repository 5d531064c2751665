package probe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipdash/internal/models"
)

// dohHandler answers with a well-formed DNS reply to whatever question the
// request carries.
func dohHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		query := new(dns.Msg)
		require.NoError(t, query.Unpack(body))

		reply := new(dns.Msg)
		reply.SetReply(query)
		packed, err := reply.Pack()
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/dns-message")
		_, _ = w.Write(packed)
	}
}

func newTestProber(t *testing.T, targets []models.Target, timeout time.Duration) *Prober {
	t.Helper()
	p, err := New(targets, timeout, "example.com.")
	require.NoError(t, err)
	return p
}

func TestProbeSuccess(t *testing.T) {
	srv := httptest.NewServer(dohHandler(t))
	defer srv.Close()

	p := newTestProber(t, []models.Target{{Name: "test", URL: srv.URL}}, 2*time.Second)
	result := p.Probe(context.Background(), p.Targets()[0])

	assert.True(t, result.OK)
	assert.Equal(t, "test", result.Target)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Empty(t, result.Error)
	assert.Greater(t, result.LatencyMs, 0.0)
	assert.False(t, result.CheckedAt.IsZero())
}

func TestProbeFailureModes(t *testing.T) {
	errorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer errorSrv.Close()

	garbageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/dns-message")
		_, _ = w.Write([]byte("not a dns message"))
	}))
	defer garbageSrv.Close()

	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slowSrv.Close()

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadSrv.URL
	deadSrv.Close()

	tests := []struct {
		name       string
		url        string
		timeout    time.Duration
		wantStatus int
	}{
		{
			name:       "HTTP error status",
			url:        errorSrv.URL,
			timeout:    2 * time.Second,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unparseable body",
			url:        garbageSrv.URL,
			timeout:    2 * time.Second,
			wantStatus: http.StatusOK,
		},
		{
			name:       "timeout",
			url:        slowSrv.URL,
			timeout:    50 * time.Millisecond,
			wantStatus: 0,
		},
		{
			name:       "connection refused",
			url:        deadURL,
			timeout:    2 * time.Second,
			wantStatus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProber(t, []models.Target{{Name: "test", URL: tt.url}}, tt.timeout)
			result := p.Probe(context.Background(), p.Targets()[0])

			assert.False(t, result.OK)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.NotEmpty(t, result.Error)
			assert.GreaterOrEqual(t, result.LatencyMs, 0.0)
		})
	}
}

func TestProbeAll(t *testing.T) {
	okSrv := httptest.NewServer(dohHandler(t))
	defer okSrv.Close()

	downSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer downSrv.Close()

	targets := []models.Target{
		{Name: "alpha", URL: okSrv.URL},
		{Name: "beta", URL: downSrv.URL},
		{Name: "gamma", URL: okSrv.URL},
	}

	p := newTestProber(t, targets, 2*time.Second)
	results := p.ProbeAll(context.Background())

	// One result per target, in registry order, regardless of outcome.
	require.Len(t, results, len(targets))
	for i, target := range targets {
		assert.Equal(t, target.Name, results[i].Target)
	}
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, http.StatusBadGateway, results[1].Status)
	assert.True(t, results[2].OK)
}

func TestDefaultTargets(t *testing.T) {
	p := newTestProber(t, nil, time.Second)
	require.NotEmpty(t, p.Targets())

	seen := map[string]bool{}
	for _, target := range p.Targets() {
		assert.NotEmpty(t, target.Name)
		assert.NotEmpty(t, target.URL)
		assert.False(t, seen[target.Name], "duplicate target %s", target.Name)
		seen[target.Name] = true
	}
}

func TestCannedQuery(t *testing.T) {
	packed, err := cannedQuery("example.com.")
	require.NoError(t, err)

	m := new(dns.Msg)
	require.NoError(t, m.Unpack(packed))
	require.Len(t, m.Question, 1)
	assert.Equal(t, "example.com.", m.Question[0].Name)
	assert.Equal(t, dns.TypeA, m.Question[0].Qtype)
	assert.Equal(t, uint16(0), m.Id)
}
