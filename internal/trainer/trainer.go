// Package trainer drives a single learner's drill session. It owns the current
// drill.Session, turns raw learner text into submissions, timestamps each
// problem, and keeps response statistics. Rendering front ends (terminal UI,
// WebSocket) talk to a Trainer and never mutate core state themselves.
package trainer

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/statistics"
)

// Trainer is the session controller for one learner.
type Trainer struct {
	gen    *drill.Generator
	clock  quartz.Clock
	logger *log.Logger
	shared *drill.SharedScore

	mu      sync.Mutex
	session drill.Session
	stats   statistics.Statistics
}

// Option configures a Trainer
type Option func(*Trainer)

// WithSharedScore also records every grading into a tally shared with other
// trainers.
func WithSharedScore(shared *drill.SharedScore) Option {
	return func(t *Trainer) {
		t.shared = shared
	}
}

// New creates a trainer in the Idle state.
func New(gen *drill.Generator, clock quartz.Clock, logger *log.Logger, opts ...Option) *Trainer {
	t := &Trainer{
		gen:    gen,
		clock:  clock,
		logger: logger.WithPrefix("trainer"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start presents the first scenario.
func (t *Trainer) Start() (drill.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.session.Start(t.gen.Generate(), t.clock.Now())
	if err != nil {
		return t.session, fmt.Errorf("failed to start drill: %w", err)
	}
	t.session = next
	t.logPresented()
	return t.session, nil
}

// Next replaces a checked scenario with a new one.
func (t *Trainer) Next() (drill.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.session.Next(t.gen.Generate(), t.clock.Now())
	if err != nil {
		return t.session, fmt.Errorf("failed to advance drill: %w", err)
	}
	t.session = next
	t.logPresented()
	return t.session, nil
}

// Advance starts the session if it is idle, otherwise moves to the next
// scenario. It is what a "new problem" button does.
func (t *Trainer) Advance() (drill.Session, error) {
	if t.Session().State == drill.Idle {
		return t.Start()
	}
	return t.Next()
}

// Check parses raw learner text and grades it. Blank or non-numeric text
// counts as an empty answer.
func (t *Trainer) Check(raw map[drill.Field]string) (drill.Session, error) {
	return t.CheckSubmission(drill.ParseSubmission(raw))
}

// CheckSubmission grades an already normalized submission.
func (t *Trainer) CheckSubmission(sub drill.Submission) (drill.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := t.session.Check(sub, t.clock.Now())
	if err != nil {
		return t.session, fmt.Errorf("failed to check answers: %w", err)
	}
	t.session = next
	t.stats.Add(statistics.FromSession(next))
	if t.shared != nil {
		t.shared.Record(next.Result.AllCorrect)
	}

	t.logger.Info("Answers checked",
		"scenario", next.Number,
		"correct", next.Result.CorrectCount(),
		"allCorrect", next.Result.AllCorrect,
		"elapsed", next.Elapsed(),
		"score", next.Score.String())
	return t.session, nil
}

// Session returns the current session state.
func (t *Trainer) Session() drill.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Stats returns a snapshot of the response statistics.
func (t *Trainer) Stats() statistics.Statistics {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.stats
	stats.Values = append([]float64(nil), t.stats.Values...)
	return stats
}

func (t *Trainer) logPresented() {
	s := t.session.Scenario
	t.logger.Debug("Scenario presented",
		"scenario", t.session.Number,
		"players", s.TotalPlayers,
		"pot", s.Pot,
		"payout", s.Payout)
}
