package api

import (
	"encoding/json"
	"net/http"

	"github.com/okonek/mathsprint/internal/apperr"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
)

func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("saving game score")

	var draft models.GameScoreDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		handleError(w, r, apperr.BadRequest("invalid JSON body"))
		return
	}

	record, err := s.Scores.SubmitScore(r.Context(), draft)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, record)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	gameMode := r.URL.Query().Get("gameMode")
	log.Debug("fetching leaderboard: mode=%s", gameMode)

	scores, err := s.Scores.Leaderboard(r.Context(), gameMode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if scores == nil {
		scores = []models.GameScore{}
	}

	writeJSON(w, r, http.StatusOK, scores)
}

func (s *Server) handleBestScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	playerName := r.URL.Query().Get("playerName")
	gameMode := r.URL.Query().Get("gameMode")
	log.Debug("fetching best score: player=%s, mode=%s", playerName, gameMode)

	if playerName == "" || gameMode == "" {
		handleError(w, r, apperr.BadRequest("playerName and gameMode are required"))
		return
	}

	best, err := s.Scores.PlayerBest(r.Context(), playerName, gameMode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]int{"bestScore": best})
}
