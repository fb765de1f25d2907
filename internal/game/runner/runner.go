// Package runner drives a game session against the wall clock and
// settles the result with the score server when the timer runs out.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/okonek/mathsprint/internal/client"
	"github.com/okonek/mathsprint/internal/game"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
	"github.com/okonek/mathsprint/internal/worker"
)

// TickInterval is the wall-clock period backing one session tick.
const TickInterval = time.Second

// EndSummary is everything the end screen needs once a game finishes.
type EndSummary struct {
	Score          int
	PersonalBest   int
	IsNewHighScore bool
	Leaderboard    []models.GameScore
}

// Runner owns the clock for a single session. All session access while
// the clock is running must go through the runner, which serializes it
// against the ticker goroutine.
type Runner struct {
	mu      sync.Mutex
	session *game.Session
	scores  client.ScoreClient
	pool    *worker.Pool
	done    chan struct{}
	stop    context.CancelFunc
	log     *logger.Logger
}

func New(session *game.Session, scores client.ScoreClient, pool *worker.Pool) *Runner {
	return &Runner{
		session: session,
		scores:  scores,
		pool:    pool,
		done:    make(chan struct{}),
		log:     logger.Default().WithPrefix("runner").WithField("session_id", session.ID()),
	}
}

// StartClock begins ticking the session once per TickInterval. It returns
// immediately; Done is closed when the session ends, whether by timeout,
// an explicit Abort, or context cancellation.
func (r *Runner) StartClock(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.stop = cancel

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.mu.Lock()
				r.session.End()
				r.mu.Unlock()
				return
			case <-ticker.C:
				r.mu.Lock()
				r.session.Tick()
				ended := r.session.State() == game.StateEnded
				r.mu.Unlock()
				if ended {
					return
				}
			}
		}
	}()
}

// Done is closed once the session has ended and the clock goroutine exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Abort ends the session early and releases the clock goroutine.
func (r *Runner) Abort() {
	if r.stop != nil {
		r.stop()
	}
	<-r.done
}

// Submit forwards an answer to the session under the runner's lock.
func (r *Runner) Submit(input string) (game.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Submit(input)
}

// Snapshot returns the fields the play loop renders each frame.
func (r *Runner) Snapshot() (problem game.Problem, input string, score, remaining int, fb *game.Feedback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Problem(), r.session.Input(), r.session.Score(), r.session.TimeRemaining(), r.session.Feedback()
}

// Settle records the finished game and gathers the end screen data. The
// previous best is read before the new score is submitted so that a tied
// score does not count as a new high score. Submission itself goes through
// the worker pool and never blocks the end screen.
func (r *Runner) Settle(ctx context.Context) (*EndSummary, error) {
	r.mu.Lock()
	name := r.session.PlayerName()
	mode := string(r.session.Mode())
	score := r.session.Score()
	r.mu.Unlock()

	summary := &EndSummary{Score: score}

	previous, err := r.scores.BestScore(ctx, name, mode)
	if err != nil {
		r.log.Warn("could not fetch previous best: %v", err)
	} else {
		summary.IsNewHighScore = score > previous
	}
	summary.PersonalBest = max(score, previous)

	r.pool.Submit(&worker.SubmitScoreJob{
		Client: r.scores,
		Draft:  models.GameScoreDraft{PlayerName: name, Score: score, GameMode: mode},
	})

	board, err := r.scores.Leaderboard(ctx, mode)
	if err != nil {
		r.log.Warn("could not fetch leaderboard: %v", err)
		return summary, err
	}
	summary.Leaderboard = board
	return summary, nil
}
