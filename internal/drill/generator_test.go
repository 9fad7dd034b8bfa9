package drill

import (
	"errors"
	"testing"

	"github.com/lox/potdrill/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workedExample scripts 4 seated players with players [4,4,3,3] and bets
// [100,100,50,50]. Bet draws are indexes into BetDenominations.
func workedExample() *randutil.Script {
	return randutil.NewScript(
		4,    // seated
		0, 1, // Pre-flop: no folds, bet 100
		0, 1, // Flop: no folds, bet 100
		1, 0, // Turn: one fold, bet 50
		0, 0, // River: no folds, bet 50
	)
}

func TestGenerateWorkedExample(t *testing.T) {
	t.Parallel()

	src := workedExample()
	s := NewGenerator(src).Generate()

	assert.Equal(t, 0, src.Remaining(), "every scripted draw should be consumed")
	assert.Equal(t, 4, s.TotalPlayers)

	wantPlayers := []int{4, 4, 3, 3}
	wantBets := []int{100, 100, 50, 50}
	wantFolds := []int{0, 0, 1, 0}
	for i, r := range s.Rounds {
		assert.Equal(t, Streets[i], r.Street)
		assert.Equal(t, wantPlayers[i], r.Players, "%s players", r.Street)
		assert.Equal(t, wantBets[i], r.Bet, "%s bet", r.Street)
		assert.Equal(t, wantFolds[i], r.Folds, "%s folds", r.Street)
	}

	assert.Equal(t, 1100, s.Pot)
	assert.Equal(t, 55, s.Rake)
	assert.Equal(t, 10, s.Tip)
	assert.Equal(t, 20, s.Jackpot)
	assert.Equal(t, 85, s.TotalDeductions)
	assert.Equal(t, 1015, s.Payout)
}

func TestGenerateStopsFoldingAtTwoPlayers(t *testing.T) {
	t.Parallel()

	// 3 seated, one fold on the pre-flop leaves two players. Later streets
	// must not draw a fold count, so only bet indexes follow.
	src := randutil.NewScript(3, 1, 9, 9, 9, 9)
	s := NewGenerator(src).Generate()

	require.NoError(t, s.Validate())
	assert.Equal(t, 0, src.Remaining())
	for i, r := range s.Rounds {
		assert.Equal(t, 2, r.Players)
		assert.Equal(t, 500, r.Bet)
		if i > 0 {
			assert.Zero(t, r.Folds)
		}
	}
	assert.Equal(t, 4000, s.Pot)
	assert.Equal(t, 100, s.Rake, "rake is capped")
	assert.Equal(t, 40, s.Tip)
	assert.Equal(t, 3840, s.Payout)
}

func TestGenerateFoldCap(t *testing.T) {
	t.Parallel()

	// Ask for 5 folds each street from 8 seated; the cap is 2.
	src := randutil.NewScript(8, 5, 0, 5, 0, 5, 0, 5, 0)
	s := NewGenerator(src).Generate()

	require.NoError(t, s.Validate())
	assert.Equal(t, []int{6, 4, 2, 2}, []int{
		s.Rounds[0].Players, s.Rounds[1].Players, s.Rounds[2].Players, s.Rounds[3].Players,
	})
	assert.Equal(t, 2, s.Rounds[2].Folds)
	assert.Zero(t, s.Rounds[3].Folds)
}

func TestGeneratedScenarioProperties(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(randutil.New(12345))
	for i := 0; i < 5000; i++ {
		s := gen.Generate()
		require.NoError(t, s.Validate())

		require.Len(t, s.Rounds, NumRounds)
		sum := 0
		incoming := s.TotalPlayers
		for _, r := range s.Rounds {
			sum += r.Amount()
			require.LessOrEqual(t, r.Players, incoming, "players must not increase")
			if incoming <= 2 {
				require.Zero(t, r.Folds)
			} else {
				require.LessOrEqual(t, r.Folds, min(incoming-2, 2))
			}
			require.GreaterOrEqual(t, r.Players, 2)
			incoming = r.Players
		}
		require.Equal(t, sum, s.Pot)
		require.GreaterOrEqual(t, s.Rake, 0)
		require.LessOrEqual(t, s.Rake, 100)
		require.Equal(t, Tip(s.Pot), s.Tip)
		require.Equal(t, s.Pot-s.Rake-s.Tip-s.Jackpot, s.Payout)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewGenerator(randutil.New(7))
	b := NewGenerator(randutil.New(7))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestRake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pot  int
		want int
	}{
		{0, 0},
		{9, 0},
		{10, 1}, // 0.5 rounds up
		{1100, 55},
		{1110, 56},
		{1990, 100},
		{2000, 100},
		{2010, 100},
		{50000, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rake(tt.pot), "Rake(%d)", tt.pot)
	}
}

func TestValidateDetectsViolations(t *testing.T) {
	t.Parallel()

	base := NewGenerator(workedExample()).Generate()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Scenario)
		rule   string
	}{
		{"too few seats", func(s *Scenario) { s.TotalPlayers = 2 }, "seats"},
		{"street order", func(s *Scenario) { s.Rounds[1].Street = River }, "order"},
		{"too many folds", func(s *Scenario) { s.Rounds[0].Folds = 3; s.Rounds[0].Players = 1 }, "folds"},
		{"player mismatch", func(s *Scenario) { s.Rounds[2].Players = 4 }, "players"},
		{"odd bet", func(s *Scenario) { s.Rounds[3].Bet = 75 }, "bet"},
		{"pot", func(s *Scenario) { s.Pot++ }, "pot"},
		{"rake", func(s *Scenario) { s.Rake = 54 }, "rake"},
		{"tip", func(s *Scenario) { s.Tip = 20 }, "tip"},
		{"jackpot", func(s *Scenario) { s.Jackpot = 0 }, "jackpot"},
		{"deductions", func(s *Scenario) { s.TotalDeductions = 0 }, "deductions"},
		{"payout", func(s *Scenario) { s.Payout = 0 }, "payout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvariant))

			var ie *InvariantError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.rule, ie.Rule)
		})
	}
}

func TestNegativePayoutIsNotClamped(t *testing.T) {
	t.Parallel()

	rounds := [NumRounds]Round{
		{Street: PreFlop, Players: 1, Bet: 5},
		{Street: Flop, Players: 1, Bet: 5},
		{Street: Turn, Players: 1, Bet: 0},
		{Street: River, Players: 1, Bet: 0},
	}
	s := NewScenario(1, rounds)
	assert.Equal(t, 10, s.Pot)
	assert.Equal(t, 1, s.Rake)
	assert.Equal(t, -11, s.Payout)
}

func TestStreetString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pre-flop", PreFlop.String())
	assert.Equal(t, "River", River.String())
	assert.Equal(t, "Unknown", Street(9).String())

	assert.Equal(t, "None", Round{}.FoldsLabel())
	assert.Equal(t, "2", Round{Folds: 2}.FoldsLabel())
}
