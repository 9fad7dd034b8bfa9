package drill

import (
	"fmt"
	"sync"
)

// Score is the running tally of graded scenarios.
type Score struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// Record folds one grading outcome into the tally and returns the new value.
func (s Score) Record(allCorrect bool) Score {
	s.Attempted++
	if allCorrect {
		s.Correct++
	}
	return s
}

// Accuracy returns the fraction of fully correct attempts (0 when none).
func (s Score) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// String renders the tally as "correct / attempted"
func (s Score) String() string {
	return fmt.Sprintf("%d / %d", s.Correct, s.Attempted)
}

// SharedScore is a Score that may be recorded into from many goroutines.
// Each Record is a single read-modify-write.
type SharedScore struct {
	mu    sync.Mutex
	score Score
}

// Record folds one outcome into the shared tally and returns the new value.
func (s *SharedScore) Record(allCorrect bool) Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = s.score.Record(allCorrect)
	return s.score
}

// Snapshot returns the current tally.
func (s *SharedScore) Snapshot() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
