package runner_test

import (
	"context"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okonek/mathsprint/internal/game"
	"github.com/okonek/mathsprint/internal/game/runner"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/testutil/mocks"
	"github.com/okonek/mathsprint/internal/worker"
)

func newPlayingSession(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession(game.RetryRules, rand.New(rand.NewSource(7)))
	require.NoError(t, s.StartWithMode("Sam", game.ModePurple))
	return s
}

func TestSettle_NewHighScore(t *testing.T) {
	session := newPlayingSession(t)
	answer := session.Problem().Answer
	fb, err := session.Submit(strconv.Itoa(answer))
	require.NoError(t, err)
	require.Equal(t, game.FeedbackCorrect, fb.Kind)
	session.End()

	scores := new(mocks.MockScoreClient)
	scores.On("BestScore", mock.Anything, "Sam", "purple").Return(10, nil)
	scores.On("SubmitScore", mock.Anything, models.GameScoreDraft{
		PlayerName: "Sam", Score: 20, GameMode: "purple",
	}).Return(&models.GameScore{ID: 1, PlayerName: "Sam", Score: 20, GameMode: "purple"}, nil)
	scores.On("Leaderboard", mock.Anything, "purple").Return([]models.GameScore{
		{ID: 1, PlayerName: "Sam", Score: 20, GameMode: "purple"},
	}, nil)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	r := runner.New(session, scores, pool)
	summary, err := r.Settle(context.Background())
	require.NoError(t, err)

	pool.Stop()

	assert.Equal(t, 20, summary.Score)
	assert.Equal(t, 20, summary.PersonalBest)
	assert.True(t, summary.IsNewHighScore)
	assert.Len(t, summary.Leaderboard, 1)
	scores.AssertExpectations(t)
}

func TestSettle_TiedScoreIsNotNewHigh(t *testing.T) {
	session := newPlayingSession(t)
	session.End()

	scores := new(mocks.MockScoreClient)
	scores.On("BestScore", mock.Anything, "Sam", "purple").Return(0, nil)
	scores.On("SubmitScore", mock.Anything, mock.Anything).Return(&models.GameScore{ID: 2}, nil)
	scores.On("Leaderboard", mock.Anything, "purple").Return([]models.GameScore{}, nil)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	r := runner.New(session, scores, pool)
	summary, err := r.Settle(context.Background())
	require.NoError(t, err)

	pool.Stop()

	assert.Equal(t, 0, summary.Score)
	assert.Equal(t, 0, summary.PersonalBest)
	assert.False(t, summary.IsNewHighScore)
}

func TestAbort_EndsSessionAndClosesDone(t *testing.T) {
	session := newPlayingSession(t)

	r := runner.New(session, new(mocks.MockScoreClient), worker.NewPool(1, 4))
	r.StartClock(context.Background())
	r.Abort()

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel not closed after abort")
	}
	assert.Equal(t, game.StateEnded, session.State())
}

func TestSubmit_GoesThroughRunnerLock(t *testing.T) {
	session := newPlayingSession(t)
	r := runner.New(session, new(mocks.MockScoreClient), worker.NewPool(1, 4))

	answer := session.Problem().Answer
	fb, err := r.Submit(strconv.Itoa(answer))
	require.NoError(t, err)
	assert.Equal(t, game.FeedbackCorrect, fb.Kind)

	_, _, score, _, _ := r.Snapshot()
	assert.Equal(t, 20, score)
}

