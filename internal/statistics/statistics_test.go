package statistics

import (
	"math"
	"testing"
	"time"

	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allFields(ok bool) map[drill.Field]bool {
	m := make(map[drill.Field]bool)
	for _, f := range drill.Fields {
		m[f] = ok
	}
	return m
}

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.FieldAccuracy(drill.FieldPot) != 0 {
		t.Errorf("Expected accuracy of 0 for empty stats, got %f", stats.FieldAccuracy(drill.FieldPot))
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected empty stats to validate, got %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	rakeWrong := allFields(true)
	rakeWrong[drill.FieldRake] = false

	results := []DrillResult{
		{Elapsed: 10 * time.Second, Pot: 1100, AllCorrect: true, Correct: allFields(true)},
		{Elapsed: 20 * time.Second, Pot: 12000, AllCorrect: false, Correct: rakeWrong},
		{Elapsed: 30 * time.Second, Pot: 4000, AllCorrect: true, Correct: allFields(true)},
		{Elapsed: 60 * time.Second, Pot: 800, AllCorrect: false, Correct: allFields(false)},
	}
	for _, r := range results {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())

	assert.Equal(t, 4, stats.Drills)
	assert.Equal(t, 2, stats.Perfect)
	assert.InDelta(t, 30.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 25.0, stats.Median(), 1e-9)
	assert.InDelta(t, math.Sqrt(1400.0/3.0), stats.StdDev(), 1e-6)

	assert.InDelta(t, 0.75, stats.FieldAccuracy(drill.FieldPot), 1e-9)
	assert.InDelta(t, 0.5, stats.FieldAccuracy(drill.FieldRake), 1e-9)
	assert.Equal(t, drill.FieldRake, stats.WeakestField())

	assert.Equal(t, 12000, stats.MaxPot)
	assert.Equal(t, 1, stats.BigPots)
	assert.Equal(t, 0, stats.BigPotsOK)
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}

	for i := 1; i <= 5; i++ {
		stats.Add(DrillResult{Elapsed: time.Duration(i) * time.Second, Correct: allFields(true)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.9, 4.6},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ValidateDetectsDrift(t *testing.T) {
	stats := &Statistics{}
	stats.Add(DrillResult{Elapsed: time.Second, AllCorrect: true, Correct: allFields(true)})
	require.NoError(t, stats.Validate())

	stats.Values = append(stats.Values, 1)
	assert.Error(t, stats.Validate())

	stats.Values = stats.Values[:1]
	stats.Fields[drill.FieldTip].Correct = 0
	assert.Error(t, stats.Validate())
}

func TestFromSession(t *testing.T) {
	gen := drill.NewGenerator(randutil.New(11))
	start := time.Unix(1_700_000_000, 0)

	s, err := drill.Session{}.Start(gen.Generate(), start)
	require.NoError(t, err)

	sub := drill.SubmissionOf(s.Scenario)
	sub[drill.FieldPayout] = drill.Empty
	s, err = s.Check(sub, start.Add(15*time.Second))
	require.NoError(t, err)

	result := FromSession(s)
	assert.Equal(t, 15*time.Second, result.Elapsed)
	assert.Equal(t, s.Scenario.Pot, result.Pot)
	assert.False(t, result.AllCorrect)
	assert.True(t, result.Correct[drill.FieldPot])
	assert.False(t, result.Correct[drill.FieldPayout])
}
