package api

import (
	"encoding/json/v2"
	"net/http"
)

// healthResponse contains health check data.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// handleHealthCheck reports server and database status.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Database: "healthy"}
	code := http.StatusOK

	if err := s.recommendations.Ping(r.Context()); err != nil {
		s.logger.Warn("Health check database ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.MarshalWrite(w, resp); err != nil {
		s.logger.Error("Failed to encode health response", "error", err)
	}
}
