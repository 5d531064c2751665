package models

import "time"

// Target is a named DNS-over-HTTPS endpoint that can be probed.
type Target struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProbeResult represents a single latency measurement against a target.
// LatencyMs is the wall-clock time spent on the request and is filled in
// even when the probe failed (time until the failure surfaced).
type ProbeResult struct {
	Target    string    `json:"target"`
	OK        bool      `json:"ok"`
	LatencyMs float64   `json:"latency_ms"`
	Status    int       `json:"status"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
