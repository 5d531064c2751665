// Package ipinfo resolves metadata for a visitor's public address, either
// by relaying it to an upstream IP-intelligence API or from local GeoLite2
// databases when configured.
package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"ipdash/internal/metrics"
	"ipdash/internal/models"
)

// type check
var _ models.IPProvider = (*UpstreamProvider)(nil)

// UpstreamProvider relays lookups to an external IP-intelligence HTTP API.
// The upstream is a black box expected to answer GET {base}/{ip} with a
// flat JSON document of network, geo, and security fields.
type UpstreamProvider struct {
	baseURL string
	client  *http.Client
}

// NewUpstream creates an UpstreamProvider for the given base URL.
func NewUpstream(baseURL string, timeout time.Duration) *UpstreamProvider {
	return &UpstreamProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup forwards the address upstream and relays the decoded record.
func (p *UpstreamProvider) Lookup(ctx context.Context, ip string) (*models.IPInfo, error) {
	if net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("invalid IP address %q", ip)
	}

	reqURL := p.baseURL + "/" + url.PathEscape(ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.IPLookups.WithLabelValues("upstream", "error").Inc()
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.IPLookups.WithLabelValues("upstream", "error").Inc()
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var info models.IPInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		metrics.IPLookups.WithLabelValues("upstream", "error").Inc()
		return nil, fmt.Errorf("decoding upstream response: %w", err)
	}

	info.IP = ip
	info.Source = "upstream"
	metrics.IPLookups.WithLabelValues("upstream", "ok").Inc()
	return &info, nil
}
