package game_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/okonek/mathsprint/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayingSession(t *testing.T, rules game.Rules, mode game.Mode) *game.Session {
	t.Helper()
	s := game.NewSession(rules, rand.New(rand.NewSource(42)))
	require.NoError(t, s.Start("Sam"))
	require.NoError(t, s.ChooseMode(mode))
	return s
}

func submitCorrect(t *testing.T, s *game.Session) {
	t.Helper()
	fb, err := s.Submit(strconv.Itoa(s.Problem().Answer))
	require.NoError(t, err)
	require.Equal(t, game.FeedbackCorrect, fb.Kind)
}

func TestStart_RequiresName(t *testing.T) {
	s := game.NewSession(game.RetryRules, rand.New(rand.NewSource(1)))

	assert.ErrorIs(t, s.Start(""), game.ErrNameRequired)
	assert.ErrorIs(t, s.Start("   "), game.ErrNameRequired)
	assert.Equal(t, game.StateStart, s.State())

	assert.ErrorIs(t, s.Start("this name is definitely too long"), game.ErrNameTooLong)

	require.NoError(t, s.Start("  Sam  "))
	assert.Equal(t, "Sam", s.PlayerName())
	assert.Equal(t, game.StateModeSelection, s.State())
}

func TestChooseMode_EntersPlayingWithResets(t *testing.T) {
	s := game.NewSession(game.RetryRules, rand.New(rand.NewSource(1)))
	require.NoError(t, s.Start("Sam"))
	require.NoError(t, s.ChooseMode(game.ModePurple))

	assert.Equal(t, game.StatePlaying, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, game.SessionSeconds, s.TimeRemaining())
	assert.NotZero(t, s.Problem().Answer)
	assert.Nil(t, s.Feedback())
}

func TestChooseMode_RejectsUnknownMode(t *testing.T) {
	s := game.NewSession(game.RetryRules, rand.New(rand.NewSource(1)))
	require.NoError(t, s.Start("Sam"))
	assert.Error(t, s.ChooseMode(game.Mode("green")))
	assert.Equal(t, game.StateModeSelection, s.State())
}

func TestStartWithMode_SkipsSelection(t *testing.T) {
	s := game.NewSession(game.ConsolationRules, rand.New(rand.NewSource(1)))
	require.NoError(t, s.StartWithMode("Sam", game.ModeRamp))
	assert.Equal(t, game.StatePlaying, s.State())
	assert.Equal(t, game.ModeRamp, s.Mode())
}

func TestSubmit_InvalidInput(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModePurple)
	before := s.Problem()

	fb, err := s.Submit("not a number")
	require.NoError(t, err)
	assert.Equal(t, game.FeedbackInvalid, fb.Kind)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, before, s.Problem())
}

func TestSubmit_CorrectScoresAndAdvances(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModeOrange)
	before := s.Problem()

	submitCorrect(t, s)
	assert.Equal(t, 20, s.Score())
	assert.Empty(t, s.Input())

	// Problem holds through the feedback delay, then advances.
	s.Tick()
	assert.Equal(t, before, s.Problem())
	assert.NotNil(t, s.Feedback())
	s.Tick()
	assert.Nil(t, s.Feedback())
	assert.GreaterOrEqual(t, s.Problem().First, 10)
}

func TestSubmit_IncorrectRetryVariant(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModePurple)
	before := s.Problem()
	wrong := strconv.Itoa(before.Answer + 1)

	fb, err := s.Submit(wrong)
	require.NoError(t, err)
	assert.Equal(t, game.FeedbackIncorrect, fb.Kind)
	assert.Zero(t, fb.Answer, "retry variant must not reveal the answer")
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, wrong, s.Input(), "input is kept for the retry")

	// No auto-advance: the same problem stays up across ticks.
	s.Tick()
	s.Tick()
	s.Tick()
	assert.Equal(t, before, s.Problem())

	// The player can still solve it afterwards.
	submitCorrect(t, s)
	assert.Equal(t, 20, s.Score())
}

func TestSubmit_IncorrectConsolationVariant(t *testing.T) {
	s := newPlayingSession(t, game.ConsolationRules, game.ModeRamp)
	before := s.Problem()

	fb, err := s.Submit(strconv.Itoa(before.Answer + 1))
	require.NoError(t, err)
	assert.Equal(t, game.FeedbackIncorrect, fb.Kind)
	assert.Equal(t, before.Answer, fb.Answer, "consolation variant reveals the answer")
	assert.Equal(t, 1, s.Score())
	assert.Empty(t, s.Input())

	assert.NotNil(t, s.Feedback())
	s.Tick()
	s.Tick()
	assert.Nil(t, s.Feedback(), "consolation variant advances regardless")
}

func TestSubmit_SupersedesPendingAdvance(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModePurple)

	submitCorrect(t, s)
	s.Tick() // one tick into the feedback delay

	// An invalid submission supersedes the pending advance.
	fb, err := s.Submit("abc")
	require.NoError(t, err)
	assert.Equal(t, game.FeedbackInvalid, fb.Kind)

	before := s.Problem()
	s.Tick()
	s.Tick()
	assert.Equal(t, before, s.Problem(), "superseded advance must not fire")
}

func TestScoreAccumulation(t *testing.T) {
	s := newPlayingSession(t, game.ConsolationRules, game.ModePurple)

	// 3 correct, 2 incorrect: 3*20 + 2*1.
	for i := 0; i < 3; i++ {
		submitCorrect(t, s)
		s.Tick()
		s.Tick()
	}
	for i := 0; i < 2; i++ {
		_, err := s.Submit(strconv.Itoa(s.Problem().Answer + 1))
		require.NoError(t, err)
		s.Tick()
		s.Tick()
	}
	assert.Equal(t, 62, s.Score())
}

func TestTimer_EndsExactlyOnce(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModeBlue)

	for i := 0; i < game.SessionSeconds-1; i++ {
		s.Tick()
		require.Equal(t, game.StatePlaying, s.State(), "tick %d", i)
	}
	s.Tick()
	assert.Equal(t, game.StateEnded, s.State())
	assert.Equal(t, 0, s.TimeRemaining())

	// Forcing a second end has no additional effect.
	score := s.Score()
	s.End()
	s.Tick()
	assert.Equal(t, game.StateEnded, s.State())
	assert.Equal(t, score, s.Score())
}

func TestTimeout_OverridesPendingFeedback(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModePurple)
	for i := 0; i < game.SessionSeconds-1; i++ {
		s.Tick()
	}
	submitCorrect(t, s)
	s.Tick() // timer hits zero mid feedback delay

	assert.Equal(t, game.StateEnded, s.State())
	assert.Nil(t, s.Feedback())
	assert.Equal(t, 20, s.Score())
}

func TestSubmit_RejectedOutsidePlaying(t *testing.T) {
	s := game.NewSession(game.RetryRules, rand.New(rand.NewSource(1)))
	_, err := s.Submit("10")
	assert.ErrorIs(t, err, game.ErrWrongState)

	playing := newPlayingSession(t, game.RetryRules, game.ModePurple)
	playing.End()
	_, err = playing.Submit("10")
	assert.ErrorIs(t, err, game.ErrWrongState)
}

func TestReset_ClearsEverything(t *testing.T) {
	s := newPlayingSession(t, game.RetryRules, game.ModeOrange)
	submitCorrect(t, s)
	s.End()
	oldID := s.ID()

	s.Reset()
	assert.Equal(t, game.StateStart, s.State())
	assert.Empty(t, s.PlayerName())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, game.SessionSeconds, s.TimeRemaining())
	assert.NotEqual(t, oldID, s.ID())
}

func TestRampMode_EscalatesMidSession(t *testing.T) {
	s := newPlayingSession(t, game.ConsolationRules, game.ModeRamp)

	// First problems are single digit.
	assert.LessOrEqual(t, s.Problem().First, 9)

	// Two correct answers put the score at 40; the next problem ramps up.
	submitCorrect(t, s)
	s.Tick()
	s.Tick()
	submitCorrect(t, s)
	s.Tick()
	s.Tick()

	require.Equal(t, 40, s.Score())
	assert.GreaterOrEqual(t, s.Problem().First, 10)
	assert.LessOrEqual(t, s.Problem().Second, 9)
}
