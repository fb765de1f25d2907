package services

import (
	"context"
	"strings"

	"github.com/okonek/mathsprint/internal/apperr"
	"github.com/okonek/mathsprint/internal/game"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/repository"
)

// LeaderboardLimit caps the records a leaderboard query returns.
const LeaderboardLimit = 10

// ScoreService handles score submission and leaderboard business logic.
type ScoreService interface {
	SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error)
	Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error)
	PlayerBest(ctx context.Context, playerName, gameMode string) (int, error)
}

type scoreService struct {
	scores repository.ScoreRepository
}

// NewScoreService creates a new ScoreService.
func NewScoreService(scores repository.ScoreRepository) ScoreService {
	return &scoreService{scores: scores}
}

func (s *scoreService) SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting score: player=%s, score=%d, mode=%s", draft.PlayerName, draft.Score, draft.GameMode)

	draft.PlayerName = strings.TrimSpace(draft.PlayerName)
	if draft.PlayerName == "" {
		return nil, apperr.Validation("playerName", "must not be empty")
	}
	if len(draft.PlayerName) > game.NameMaxLen {
		return nil, apperr.Validation("playerName", "must be at most 20 characters")
	}
	if draft.Score < 0 {
		return nil, apperr.Validation("score", "must not be negative")
	}
	if _, err := game.ParseMode(draft.GameMode); err != nil {
		return nil, apperr.Validation("gameMode", err.Error())
	}

	record, err := s.scores.Save(ctx, draft)
	if err != nil {
		log.Error("failed to save score: %v", err)
		return nil, apperr.Internal(err)
	}

	log.Info("score saved: id=%d, player=%s, score=%d, mode=%s", record.ID, record.PlayerName, record.Score, record.GameMode)
	return record, nil
}

func (s *scoreService) Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching leaderboard: mode=%s", gameMode)

	if gameMode != "" {
		if _, err := game.ParseMode(gameMode); err != nil {
			return nil, apperr.Validation("gameMode", err.Error())
		}
	}

	scores, err := s.scores.Leaderboard(ctx, models.LeaderboardFilter{
		GameMode: gameMode,
		Limit:    LeaderboardLimit,
	})
	if err != nil {
		log.Error("failed to fetch leaderboard: %v", err)
		return nil, apperr.Internal(err)
	}
	return scores, nil
}

func (s *scoreService) PlayerBest(ctx context.Context, playerName, gameMode string) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching best score: player=%s, mode=%s", playerName, gameMode)

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return 0, apperr.Validation("playerName", "must not be empty")
	}
	if _, err := game.ParseMode(gameMode); err != nil {
		return 0, apperr.Validation("gameMode", err.Error())
	}

	best, err := s.scores.PlayerBest(ctx, playerName, gameMode)
	if err != nil {
		log.Error("failed to fetch best score: %v", err)
		return 0, apperr.Internal(err)
	}
	return best, nil
}
