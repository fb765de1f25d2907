package api

import (
	"encoding/json"
	"net/http"

	"github.com/okonek/mathsprint/internal/db"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/services"
)

// Server holds the dependencies of the HTTP API.
type Server struct {
	Scores services.ScoreService
	DB     *db.DB
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
