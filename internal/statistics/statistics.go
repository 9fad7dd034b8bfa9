// Package statistics summarizes a learner's drill history: how long answers
// take and which fields they get wrong.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/potdrill/internal/drill"
)

// DrillResult is the outcome of one checked scenario
type DrillResult struct {
	Elapsed    time.Duration
	Pot        int
	AllCorrect bool
	Correct    map[drill.Field]bool
}

// FromSession builds a DrillResult from a session that is showing results.
func FromSession(s drill.Session) DrillResult {
	correct := make(map[drill.Field]bool, len(drill.Fields))
	for f, v := range s.Result.Verdicts {
		correct[f] = v.Correct
	}
	return DrillResult{
		Elapsed:    s.Elapsed(),
		Pot:        s.Scenario.Pot,
		AllCorrect: s.Result.AllCorrect,
		Correct:    correct,
	}
}

// FieldStats tracks answers for one field
type FieldStats struct {
	Answered int
	Correct  int
}

// Statistics accumulates drill results. The zero value is ready to use.
type Statistics struct {
	Drills  int
	Perfect int
	SumSec  float64
	SumSec2 float64   // Sum of squares for variance calculation
	Values  []float64 // Answer times in seconds, for median/percentile

	Fields [5]FieldStats // Indexed by drill.Field

	// Pot size analytics
	MaxPot    int
	BigPots   int // Pots at or above the top tip tier
	BigPotsOK int // Big pots answered fully correctly
}

// Add incorporates a new drill result into the statistics
func (s *Statistics) Add(result DrillResult) {
	sec := result.Elapsed.Seconds()
	s.Drills++
	s.SumSec += sec
	s.SumSec2 += sec * sec
	s.Values = append(s.Values, sec)

	if result.AllCorrect {
		s.Perfect++
	}

	for _, f := range drill.Fields {
		s.Fields[f].Answered++
		if result.Correct[f] {
			s.Fields[f].Correct++
		}
	}

	if result.Pot > s.MaxPot {
		s.MaxPot = result.Pot
	}
	tiers := drill.TipTiers()
	if result.Pot >= tiers[len(tiers)-1].From {
		s.BigPots++
		if result.AllCorrect {
			s.BigPotsOK++
		}
	}
}

// Mean returns the mean answer time in seconds
func (s *Statistics) Mean() float64 {
	if s.Drills == 0 {
		return 0
	}
	return s.SumSec / float64(s.Drills)
}

// Variance returns the sample variance of answer times
func (s *Statistics) Variance() float64 {
	if s.Drills < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSec2 - float64(s.Drills)*mean*mean) / float64(s.Drills-1)
}

// StdDev returns the sample standard deviation of answer times
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Median returns the median answer time in seconds
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the answer time at the given percentile (0.0 to 1.0),
// linearly interpolated between samples.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// FieldAccuracy returns the fraction of correct answers for a field
func (s *Statistics) FieldAccuracy(f drill.Field) float64 {
	if f < 0 || int(f) >= len(s.Fields) {
		return 0
	}
	fs := s.Fields[f]
	if fs.Answered == 0 {
		return 0
	}
	return float64(fs.Correct) / float64(fs.Answered)
}

// WeakestField returns the field with the lowest accuracy. Ties go to the
// field earliest on the answer sheet.
func (s *Statistics) WeakestField() drill.Field {
	weakest := drill.Fields[0]
	for _, f := range drill.Fields[1:] {
		if s.FieldAccuracy(f) < s.FieldAccuracy(weakest) {
			weakest = f
		}
	}
	return weakest
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Drills < 0 {
		return fmt.Errorf("invalid drills count: %d", s.Drills)
	}

	if len(s.Values) != s.Drills {
		return fmt.Errorf("values array length (%d) does not match drills count (%d)",
			len(s.Values), s.Drills)
	}

	if s.Perfect > s.Drills {
		return fmt.Errorf("perfect drills (%d) exceeds total drills (%d)", s.Perfect, s.Drills)
	}

	for _, f := range drill.Fields {
		fs := s.Fields[f]
		if fs.Answered != s.Drills {
			return fmt.Errorf("field %s answered %d times, want %d", f, fs.Answered, s.Drills)
		}
		if fs.Correct < s.Perfect {
			return fmt.Errorf("field %s correct (%d) below perfect drills (%d)", f, fs.Correct, s.Perfect)
		}
	}

	if s.BigPotsOK > s.BigPots {
		return fmt.Errorf("big pots correct (%d) exceeds big pots (%d)", s.BigPotsOK, s.BigPots)
	}

	return nil
}
