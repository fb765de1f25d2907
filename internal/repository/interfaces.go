package repository

import (
	"context"

	"github.com/okonek/mathsprint/internal/models"
)

// ScoreRepository is the abstract score record store. Records are never
// mutated or deleted after creation; Save must be atomic, and reads must
// see any write that committed before the read began.
type ScoreRepository interface {
	Save(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error)
	Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.GameScore, error)
	PlayerBest(ctx context.Context, playerName, gameMode string) (int, error)
}

// UserRepository handles user account data access. Retained for future
// account support; no endpoint consumes it yet.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
}
