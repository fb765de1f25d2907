package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scores", s.handleSaveScore)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/best-score", s.handleBestScore)
		r.Get("/health", s.handleHealth)
	})

	return r
}
