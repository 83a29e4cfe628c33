package handlers

import (
	"log"
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

// Health reports whether the database answers and how many application tables it holds.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		log.Printf("Health check failed: %v", err)
		writeJSON(w, Response{
			Success: false,
			Message: "Database is unavailable",
			Data:    HealthResponse{Status: "error", Database: "disconnected"},
		}, http.StatusServiceUnavailable)
		return
	}

	count, err := h.Tables.CountTables(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "connected", Tables: count}, http.StatusOK)
}
