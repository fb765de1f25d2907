package client

import (
	"context"

	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/repository"
)

// StoreClient adapts a ScoreRepository to the ScoreClient interface so the
// game loop can run against a local store without a server.
type StoreClient struct {
	repo repository.ScoreRepository
}

var _ ScoreClient = (*StoreClient)(nil)

func NewStoreClient(repo repository.ScoreRepository) *StoreClient {
	return &StoreClient{repo: repo}
}

func (c *StoreClient) SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	return c.repo.Save(ctx, draft)
}

func (c *StoreClient) Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error) {
	return c.repo.Leaderboard(ctx, models.LeaderboardFilter{GameMode: gameMode})
}

func (c *StoreClient) BestScore(ctx context.Context, playerName, gameMode string) (int, error) {
	return c.repo.PlayerBest(ctx, playerName, gameMode)
}
