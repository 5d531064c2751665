package models

import "context"

// Prober executes latency probes against DoH targets.
type Prober interface {
	Targets() []Target
	Probe(ctx context.Context, target Target) ProbeResult
	ProbeAll(ctx context.Context) []ProbeResult
}

// IPProvider resolves metadata for an IP address.
type IPProvider interface {
	Lookup(ctx context.Context, ip string) (*IPInfo, error)
}
