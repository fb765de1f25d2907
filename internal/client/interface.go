package client

import (
	"context"

	"github.com/okonek/mathsprint/internal/models"
)

// ScoreClient defines the interface for score server operations.
// This interface enables testability by allowing mock implementations.
type ScoreClient interface {
	SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error)
	Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error)
	BestScore(ctx context.Context, playerName, gameMode string) (int, error)
}

// Ensure Client implements the interface
var _ ScoreClient = (*Client)(nil)
