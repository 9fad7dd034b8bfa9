package drill

import (
	"errors"
	"fmt"
	"time"
)

// State is the phase of a drill session.
type State int

const (
	Idle State = iota
	AwaitingAnswers
	ShowingResults
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingAnswers:
		return "awaiting-answers"
	case ShowingResults:
		return "showing-results"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a session action is not allowed in
// the current state, e.g. checking the same scenario twice.
var ErrInvalidTransition = errors.New("invalid session transition")

// Session is the state of one learner's drill. Transitions return a new
// Session and leave the receiver untouched.
type Session struct {
	State       State
	Number      int // Scenarios presented so far; the current one is #Number
	Scenario    Scenario
	Result      GradeResult // Set only in ShowingResults
	Score       Score
	PresentedAt time.Time
	CheckedAt   time.Time
}

// Start presents the first scenario.
func (s Session) Start(scenario Scenario, at time.Time) (Session, error) {
	if s.State != Idle {
		return s, fmt.Errorf("start from %s: %w", s.State, ErrInvalidTransition)
	}
	return s.present(scenario, at), nil
}

// Check grades the submission against the current scenario and folds the
// outcome into the score. Once checked, the answers are locked until Next.
func (s Session) Check(sub Submission, at time.Time) (Session, error) {
	if s.State != AwaitingAnswers {
		return s, fmt.Errorf("check from %s: %w", s.State, ErrInvalidTransition)
	}
	s.Result = Grade(s.Scenario, sub)
	s.Score = s.Score.Record(s.Result.AllCorrect)
	s.CheckedAt = at
	s.State = ShowingResults
	return s, nil
}

// Next replaces the checked scenario with a new one.
func (s Session) Next(scenario Scenario, at time.Time) (Session, error) {
	if s.State != ShowingResults {
		return s, fmt.Errorf("next from %s: %w", s.State, ErrInvalidTransition)
	}
	return s.present(scenario, at), nil
}

// Elapsed is the time between presenting and checking the current scenario.
// It is zero until the scenario has been checked.
func (s Session) Elapsed() time.Duration {
	if s.State != ShowingResults {
		return 0
	}
	return s.CheckedAt.Sub(s.PresentedAt)
}

func (s Session) present(scenario Scenario, at time.Time) Session {
	s.Number++
	s.Scenario = scenario
	s.Result = GradeResult{}
	s.PresentedAt = at
	s.CheckedAt = time.Time{}
	s.State = AwaitingAnswers
	return s
}
