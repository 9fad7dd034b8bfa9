package drill

import "github.com/lox/potdrill/internal/randutil"

// Generator builds random, internally consistent scenarios.
type Generator struct {
	rng randutil.Source
}

// NewGenerator creates a generator drawing from rng
func NewGenerator(rng randutil.Source) *Generator {
	return &Generator{rng: rng}
}

// Generate returns a new scenario. Draws happen in a fixed order: seated
// players, then per street an optional fold count and a bet. Generate panics
// if its own output fails Validate, since that can only be a defect here.
func (g *Generator) Generate() Scenario {
	totalPlayers := g.rng.Int(MinPlayers, MaxPlayers)
	players := totalPlayers

	var rounds [NumRounds]Round
	for i, street := range Streets {
		folds := 0
		if players > MinActivePlayers {
			folds = g.rng.Int(0, min(players-MinActivePlayers, MaxFoldsPerRound))
		}
		players -= folds

		rounds[i] = Round{
			Street:  street,
			Folds:   folds,
			Players: players,
			Bet:     randutil.Choice(g.rng, BetDenominations),
		}
	}

	s := NewScenario(totalPlayers, rounds)
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}
