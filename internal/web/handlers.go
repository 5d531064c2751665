package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ipdash/internal/ipinfo"
)

// apiError is the JSON error envelope for every API failure.
type apiError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg, Code: status})
}

// handleIP handles /api/ip requests.
func (s *Server) handleIP(w http.ResponseWriter, r *http.Request) {
	if s.provider == nil {
		writeError(w, http.StatusServiceUnavailable, "no IP metadata source configured")
		return
	}

	ip := ipinfo.ClientIP(r)
	info, err := s.provider.Lookup(r.Context(), ip)
	if err != nil {
		s.logger.Warn().Str("ip", ip).Err(err).Msg("IP lookup failed")
		writeError(w, http.StatusBadGateway, "unable to retrieve IP information")
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// handleResolvers handles /api/resolvers requests.
func (s *Server) handleResolvers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prober.Targets())
}

// handlePing handles single-target /api/ping/{name} requests.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var found bool
	for _, t := range s.prober.Targets() {
		if t.Name == name {
			writeJSON(w, http.StatusOK, s.prober.Probe(r.Context(), t))
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "unknown resolver "+name)
	}
}

// handlePingAll handles bulk /api/ping requests: a server-side fan-out
// over every registered target.
func (s *Server) handlePingAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prober.ProbeAll(r.Context()))
}

// handleHealth handles /healthz requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
