package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okonek/mathsprint/internal/apperr"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/services"
	"github.com/okonek/mathsprint/internal/testutil/mocks"
)

func TestSubmitScore_Valid(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	draft := models.GameScoreDraft{PlayerName: "Sam", Score: 60, GameMode: "purple"}
	saved := &models.GameScore{ID: 1, PlayerName: "Sam", Score: 60, GameMode: "purple"}
	repo.On("Save", mock.Anything, draft).Return(saved, nil)

	record, err := svc.SubmitScore(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, saved, record)
	repo.AssertExpectations(t)
}

func TestSubmitScore_TrimsName(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	trimmed := models.GameScoreDraft{PlayerName: "Sam", Score: 20, GameMode: "blue"}
	repo.On("Save", mock.Anything, trimmed).Return(&models.GameScore{ID: 1}, nil)

	_, err := svc.SubmitScore(context.Background(), models.GameScoreDraft{
		PlayerName: "  Sam  ", Score: 20, GameMode: "blue",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSubmitScore_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft models.GameScoreDraft
	}{
		{"empty name", models.GameScoreDraft{PlayerName: "  ", Score: 10, GameMode: "purple"}},
		{"long name", models.GameScoreDraft{PlayerName: "a very long player name indeed", Score: 10, GameMode: "purple"}},
		{"negative score", models.GameScoreDraft{PlayerName: "Sam", Score: -1, GameMode: "purple"}},
		{"unknown mode", models.GameScoreDraft{PlayerName: "Sam", Score: 10, GameMode: "green"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockScoreRepository)
			svc := services.NewScoreService(repo)

			_, err := svc.SubmitScore(context.Background(), tt.draft)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			assert.Equal(t, 400, appErr.Status)
			repo.AssertNotCalled(t, "Save")
		})
	}
}

func TestSubmitScore_ZeroScoreAllowed(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	draft := models.GameScoreDraft{PlayerName: "Sam", Score: 0, GameMode: "ramp"}
	repo.On("Save", mock.Anything, draft).Return(&models.GameScore{ID: 1}, nil)

	_, err := svc.SubmitScore(context.Background(), draft)
	assert.NoError(t, err)
}

func TestSubmitScore_StorageFailure(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("disk on fire"))

	_, err := svc.SubmitScore(context.Background(), models.GameScoreDraft{
		PlayerName: "Sam", Score: 10, GameMode: "purple",
	})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeInternal, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}

func TestLeaderboard_PassesModeAndCap(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	expected := []models.GameScore{{ID: 1, PlayerName: "Sam", Score: 60}}
	repo.On("Leaderboard", mock.Anything, models.LeaderboardFilter{
		GameMode: "orange",
		Limit:    services.LeaderboardLimit,
	}).Return(expected, nil)

	scores, err := svc.Leaderboard(context.Background(), "orange")
	require.NoError(t, err)
	assert.Equal(t, expected, scores)
	repo.AssertExpectations(t)
}

func TestLeaderboard_AllModes(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	repo.On("Leaderboard", mock.Anything, models.LeaderboardFilter{
		Limit: services.LeaderboardLimit,
	}).Return([]models.GameScore{}, nil)

	_, err := svc.Leaderboard(context.Background(), "")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLeaderboard_UnknownMode(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	_, err := svc.Leaderboard(context.Background(), "green")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
}

func TestPlayerBest_Validation(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	_, err := svc.PlayerBest(context.Background(), "", "purple")
	assert.Error(t, err)

	_, err = svc.PlayerBest(context.Background(), "Sam", "green")
	assert.Error(t, err)
}

func TestPlayerBest_Delegates(t *testing.T) {
	repo := new(mocks.MockScoreRepository)
	svc := services.NewScoreService(repo)

	repo.On("PlayerBest", mock.Anything, "Alice", "purple").Return(20, nil)

	best, err := svc.PlayerBest(context.Background(), "Alice", "purple")
	require.NoError(t, err)
	assert.Equal(t, 20, best)
}
