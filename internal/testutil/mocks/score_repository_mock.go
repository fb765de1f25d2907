package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okonek/mathsprint/internal/models"
)

// MockScoreRepository is a mock implementation of repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Save(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameScore), args.Error(1)
}

func (m *MockScoreRepository) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]models.GameScore, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameScore), args.Error(1)
}

func (m *MockScoreRepository) PlayerBest(ctx context.Context, playerName, gameMode string) (int, error) {
	args := m.Called(ctx, playerName, gameMode)
	return args.Int(0), args.Error(1)
}
