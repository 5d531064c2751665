// Package probe measures round-trip latency to DNS-over-HTTPS resolvers.
//
// Each probe is a single timed RFC 8484 POST carrying a canned A-record
// query. Heterogeneous failure modes (transport errors, timeouts, bad HTTP
// statuses, unparseable bodies) are normalized into one result shape so the
// dashboard can render every target uniformly.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog"

	"ipdash/internal/log"
	"ipdash/internal/metrics"
	"ipdash/internal/models"
)

const (
	dnsMessageType = "application/dns-message"

	// maxResponseSize bounds how much of a resolver response is read.
	// Normal DoH answers are well under 4KB.
	maxResponseSize = 64 << 10
)

// type check
var _ models.Prober = (*Prober)(nil)

// Prober issues timed DoH requests against a fixed set of named targets.
type Prober struct {
	targets []models.Target
	client  *http.Client
	timeout time.Duration
	query   []byte
	logger  zerolog.Logger
}

// New creates a Prober for the given targets. A nil or empty target list
// selects the built-in registry.
func New(targets []models.Target, timeout time.Duration, probeDomain string) (*Prober, error) {
	if len(targets) == 0 {
		targets = DefaultTargets()
	}

	query, err := cannedQuery(probeDomain)
	if err != nil {
		return nil, fmt.Errorf("building probe query: %w", err)
	}

	return &Prober{
		targets: targets,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		query:   query,
		logger:  log.WithComponent("probe"),
	}, nil
}

// cannedQuery packs the fixed DNS question sent to every resolver. The
// message ID is zero as RFC 8484 recommends for cache friendliness.
func cannedQuery(domain string) ([]byte, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	m.Id = 0
	return m.Pack()
}

// Targets returns the registered targets in report order.
func (p *Prober) Targets() []models.Target {
	return p.targets
}

// Probe issues one timed request against the target and normalizes the
// outcome. It never returns an error; failures are part of the result.
func (p *Prober) Probe(ctx context.Context, target models.Target) models.ProbeResult {
	result := models.ProbeResult{
		Target:    target.Name,
		CheckedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	status, body, err := p.exchange(ctx, target.URL)
	result.LatencyMs = float64(time.Since(start)) / float64(time.Millisecond)
	result.Status = status

	switch {
	case err != nil:
		result.Error = err.Error()
	case status < 200 || status > 299:
		result.Error = fmt.Sprintf("unexpected status %d", status)
	default:
		resp := new(dns.Msg)
		if unpackErr := resp.Unpack(body); unpackErr != nil {
			result.Error = fmt.Sprintf("bad DNS response: %v", unpackErr)
		} else {
			result.OK = true
		}
	}

	metrics.ProbeDuration.WithLabelValues(target.Name).Observe(result.LatencyMs / 1000)
	if !result.OK {
		metrics.ProbeFailures.WithLabelValues(target.Name).Inc()
		p.logger.Debug().
			Str("target", target.Name).
			Int("status", status).
			Str("error", result.Error).
			Msg("probe failed")
	}

	return result
}

// exchange performs the HTTP round trip and reads the full body, so the
// measured latency covers the complete response.
func (p *Prober) exchange(ctx context.Context, url string) (status int, body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(p.query))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", dnsMessageType)
	req.Header.Set("Accept", dnsMessageType)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}
