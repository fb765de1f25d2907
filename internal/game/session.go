package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionSeconds is the countdown budget for one play-through.
	SessionSeconds = 180
	// FeedbackDelayTicks is how many timer ticks feedback stays on screen
	// before the session advances to a fresh problem.
	FeedbackDelayTicks = 2
	// NameMaxLen bounds the player name after trimming.
	NameMaxLen = 20
)

// State is the session lifecycle state.
type State int

const (
	StateStart State = iota
	StateModeSelection
	StatePlaying
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateModeSelection:
		return "mode_selection"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// FeedbackKind classifies the response to an answer submission.
type FeedbackKind int

const (
	FeedbackInvalid FeedbackKind = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// Feedback is the per-answer response shown to the player.
type Feedback struct {
	Kind    FeedbackKind
	Message string
	// Answer carries the correct sum when the active rules reveal it.
	Answer int
}

var (
	ErrNameRequired = errors.New("player name is required")
	ErrNameTooLong  = errors.New("player name is too long")
	ErrWrongState   = errors.New("operation not allowed in current state")
)

// Session drives a single player's play-through. It is mutated exclusively
// by its owner from one sequential event stream; wall-clock scheduling
// belongs to the runner, not the session.
type Session struct {
	id    string
	rules Rules
	rng   *rand.Rand

	state         State
	playerName    string
	mode          Mode
	score         int
	timeRemaining int
	problem       Problem
	input         string
	feedback      *Feedback
	advanceIn     int
}

// NewSession creates a session in the Start state. A nil rng gets a
// time-seeded source.
func NewSession(rules Rules, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		id:            uuid.NewString(),
		rules:         rules,
		rng:           rng,
		state:         StateStart,
		timeRemaining: SessionSeconds,
	}
}

// Start validates the player name and moves to mode selection.
func (s *Session) Start(name string) error {
	if s.state != StateStart {
		return ErrWrongState
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > NameMaxLen {
		return ErrNameTooLong
	}
	s.playerName = name
	s.state = StateModeSelection
	return nil
}

// ChooseMode binds a mode and enters Playing with a fresh problem, score
// and timer reset.
func (s *Session) ChooseMode(mode Mode) error {
	if s.state != StateModeSelection {
		return ErrWrongState
	}
	if !mode.Valid() {
		return fmt.Errorf("unknown game mode %q", mode)
	}
	s.mode = mode
	s.score = 0
	s.timeRemaining = SessionSeconds
	s.feedback = nil
	s.advanceIn = 0
	s.input = ""
	s.problem = GenerateProblem(s.rng, s.mode.Tier(s.score))
	s.state = StatePlaying
	return nil
}

// StartWithMode skips mode selection; used when the mode is fixed up front,
// as in the auto-ramping variant.
func (s *Session) StartWithMode(name string, mode Mode) error {
	if err := s.Start(name); err != nil {
		return err
	}
	return s.ChooseMode(mode)
}

// Submit handles one answer. Correct answers score and schedule an advance
// after the feedback delay; wrong answers follow the active rules. A new
// submission supersedes any pending advance.
func (s *Session) Submit(input string) (Feedback, error) {
	if s.state != StatePlaying {
		return Feedback{}, ErrWrongState
	}
	s.input = input

	answer, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		fb := Feedback{Kind: FeedbackInvalid, Message: "Please enter a number!"}
		s.feedback = &fb
		s.advanceIn = 0
		return fb, nil
	}

	if answer == s.problem.Answer {
		s.score += s.rules.CorrectPoints
		s.input = ""
		fb := Feedback{Kind: FeedbackCorrect, Message: "Excellent! Well done!"}
		s.feedback = &fb
		s.advanceIn = FeedbackDelayTicks
		return fb, nil
	}

	fb := Feedback{Kind: FeedbackIncorrect, Message: "Try that again!"}
	s.score += s.rules.IncorrectPoints
	if s.rules.RevealAnswer {
		fb.Answer = s.problem.Answer
		fb.Message = fmt.Sprintf("Not quite! The answer was %d.", s.problem.Answer)
	}
	if s.rules.AdvanceOnIncorrect {
		s.input = ""
		s.advanceIn = FeedbackDelayTicks
	} else {
		// Same problem, same input; the player retries without advancing.
		s.advanceIn = 0
	}
	s.feedback = &fb
	return fb, nil
}

// Tick advances the session by one second: it drives the pending feedback
// advance and the countdown, forcing End at zero.
func (s *Session) Tick() {
	if s.state != StatePlaying {
		return
	}

	if s.advanceIn > 0 {
		s.advanceIn--
		if s.advanceIn == 0 {
			s.feedback = nil
			s.problem = GenerateProblem(s.rng, s.mode.Tier(s.score))
		}
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.End()
	}
}

// End forces the session into Ended regardless of pending feedback. It is
// idempotent; a second call has no additional effect.
func (s *Session) End() {
	if s.state == StateEnded {
		return
	}
	s.state = StateEnded
	s.advanceIn = 0
	s.feedback = nil
}

// Reset returns to Start with all session fields cleared so the player can
// go again.
func (s *Session) Reset() {
	s.id = uuid.NewString()
	s.state = StateStart
	s.playerName = ""
	s.mode = ""
	s.score = 0
	s.timeRemaining = SessionSeconds
	s.problem = Problem{}
	s.input = ""
	s.feedback = nil
	s.advanceIn = 0
}

func (s *Session) ID() string          { return s.id }
func (s *Session) State() State        { return s.state }
func (s *Session) PlayerName() string  { return s.playerName }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Score() int          { return s.score }
func (s *Session) TimeRemaining() int  { return s.timeRemaining }
func (s *Session) Problem() Problem    { return s.problem }
func (s *Session) Input() string       { return s.input }
func (s *Session) Feedback() *Feedback { return s.feedback }
