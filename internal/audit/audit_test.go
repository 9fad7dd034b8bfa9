package audit

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/potdrill/internal/drill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRunFindsNoViolations(t *testing.T) {
	report, err := Run(context.Background(), Options{Scenarios: 10000, Workers: 4, Seed: 1}, quietLogger())
	require.NoError(t, err)

	assert.True(t, report.OK(), "violations: %v", report.Violations)
	assert.Equal(t, 10000, report.Scenarios)

	tiers := 0
	for _, n := range report.TipTiers {
		tiers += n
	}
	assert.Equal(t, report.Scenarios, tiers)

	seats := 0
	for n, count := range report.SeatedPlayers {
		assert.GreaterOrEqual(t, n, drill.MinPlayers)
		assert.LessOrEqual(t, n, drill.MaxPlayers)
		seats += count
	}
	assert.Equal(t, report.Scenarios, seats)
	assert.Len(t, report.SeatedPlayers, 6, "every seat count should appear")

	// Two players always see four streets at the minimum bet at least.
	assert.GreaterOrEqual(t, report.MinPot, 2*50*drill.NumRounds)
	assert.LessOrEqual(t, report.MaxPot, 8*500*drill.NumRounds)
	assert.GreaterOrEqual(t, report.MeanPot, float64(report.MinPot))
	assert.LessOrEqual(t, report.MeanPot, float64(report.MaxPot))
	assert.Zero(t, report.NegativePayout)
	assert.Positive(t, report.RakeCapped)
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Scenarios: 777, Workers: 3, Seed: 99}
	a, err := Run(context.Background(), opts, quietLogger())
	require.NoError(t, err)
	b, err := Run(context.Background(), opts, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunSplitsUnevenWork(t *testing.T) {
	report, err := Run(context.Background(), Options{Scenarios: 10, Workers: 3}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 10, report.Scenarios)

	report, err = Run(context.Background(), Options{Scenarios: 2, Workers: 16}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scenarios)
}

func TestRunEmpty(t *testing.T) {
	report, err := Run(context.Background(), Options{}, quietLogger())
	require.NoError(t, err)
	assert.Zero(t, report.Scenarios)
	assert.Zero(t, report.MinPot)
	assert.True(t, report.OK())

	_, err = Run(context.Background(), Options{Scenarios: -1}, quietLogger())
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Scenarios: 5000, Workers: 2}, quietLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
