package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okonek/mathsprint/internal/models"
)

// MockScoreClient is a mock implementation of client.ScoreClient
type MockScoreClient struct {
	mock.Mock
}

func (m *MockScoreClient) SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameScore), args.Error(1)
}

func (m *MockScoreClient) Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error) {
	args := m.Called(ctx, gameMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameScore), args.Error(1)
}

func (m *MockScoreClient) BestScore(ctx context.Context, playerName, gameMode string) (int, error) {
	args := m.Called(ctx, playerName, gameMode)
	return args.Int(0), args.Error(1)
}
