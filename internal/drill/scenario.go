package drill

import (
	"errors"
	"fmt"
)

// Table rules shared by every scenario.
const (
	NumRounds        = 4
	MinPlayers       = 3
	MaxPlayers       = 8
	MaxFoldsPerRound = 2
	// MinActivePlayers is the player count at which folding stops.
	MinActivePlayers = 2

	Jackpot = 20
	RakeCap = 100
	// RakePercent is applied to the pot and rounded half up.
	RakePercent = 5
)

// BetDenominations are the per-player wagers a round may use.
var BetDenominations = []int{50, 100, 150, 200, 250, 300, 350, 400, 450, 500}

// Scenario is the canonical answer key for one drill problem.
type Scenario struct {
	TotalPlayers    int              `json:"totalPlayers"`
	Rounds          [NumRounds]Round `json:"rounds"`
	Pot             int              `json:"pot"`
	Rake            int              `json:"rake"`
	Tip             int              `json:"tip"`
	Jackpot         int              `json:"jackpot"`
	TotalDeductions int              `json:"totalDeductions"`
	Payout          int              `json:"payout"` // Not clamped; small pots can go negative
}

// Rake returns the house fee for a pot: RakePercent of the pot, rounded half
// up, capped at RakeCap.
func Rake(pot int) int {
	if pot <= 0 {
		return 0
	}
	rake := (pot*RakePercent + 50) / 100
	if rake > RakeCap {
		return RakeCap
	}
	return rake
}

// NewScenario derives every pot and deduction value from the seated player
// count and the four rounds.
func NewScenario(totalPlayers int, rounds [NumRounds]Round) Scenario {
	s := Scenario{
		TotalPlayers: totalPlayers,
		Rounds:       rounds,
		Jackpot:      Jackpot,
	}
	for _, r := range rounds {
		s.Pot += r.Amount()
	}
	s.Rake = Rake(s.Pot)
	s.Tip = Tip(s.Pot)
	s.TotalDeductions = s.Rake + s.Tip + s.Jackpot
	s.Payout = s.Pot - s.TotalDeductions
	return s
}

// Value returns the canonical value of a graded field.
func (s Scenario) Value(f Field) int {
	switch f {
	case FieldPot:
		return s.Pot
	case FieldRake:
		return s.Rake
	case FieldTip:
		return s.Tip
	case FieldJackpot:
		return s.Jackpot
	case FieldPayout:
		return s.Payout
	default:
		panic(fmt.Sprintf("drill: unknown field %d", int(f)))
	}
}

// ErrInvariant is matched by every *InvariantError.
var ErrInvariant = errors.New("scenario invariant violated")

// InvariantError reports a scenario that breaks a table rule. It always
// indicates a generator defect, never bad learner input.
type InvariantError struct {
	Rule   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariant, e.Rule, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func violation(rule, format string, args ...any) error {
	return &InvariantError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// Validate checks every structural and arithmetic rule of the scenario.
func (s Scenario) Validate() error {
	if s.TotalPlayers < MinPlayers || s.TotalPlayers > MaxPlayers {
		return violation("seats", "total players %d outside [%d, %d]", s.TotalPlayers, MinPlayers, MaxPlayers)
	}

	incoming := s.TotalPlayers
	pot := 0
	for i, r := range s.Rounds {
		if r.Street != Streets[i] {
			return violation("order", "round %d is %s, want %s", i, r.Street, Streets[i])
		}
		maxFolds := 0
		if incoming > MinActivePlayers {
			maxFolds = min(incoming-MinActivePlayers, MaxFoldsPerRound)
		}
		if r.Folds < 0 || r.Folds > maxFolds {
			return violation("folds", "%s folds %d outside [0, %d] with %d incoming", r.Street, r.Folds, maxFolds, incoming)
		}
		if r.Players != incoming-r.Folds {
			return violation("players", "%s has %d players, want %d", r.Street, r.Players, incoming-r.Folds)
		}
		if r.Players <= 0 {
			return violation("players", "%s has no active players", r.Street)
		}
		if !isDenomination(r.Bet) {
			return violation("bet", "%s bet %d is not a denomination", r.Street, r.Bet)
		}
		pot += r.Amount()
		incoming = r.Players
	}

	switch {
	case s.Pot != pot:
		return violation("pot", "pot %d, rounds sum to %d", s.Pot, pot)
	case s.Rake != Rake(s.Pot):
		return violation("rake", "rake %d, want %d", s.Rake, Rake(s.Pot))
	case s.Tip != Tip(s.Pot):
		return violation("tip", "tip %d, want %d", s.Tip, Tip(s.Pot))
	case s.Jackpot != Jackpot:
		return violation("jackpot", "jackpot %d, want %d", s.Jackpot, Jackpot)
	case s.TotalDeductions != s.Rake+s.Tip+s.Jackpot:
		return violation("deductions", "total %d, parts sum to %d", s.TotalDeductions, s.Rake+s.Tip+s.Jackpot)
	case s.Payout != s.Pot-s.TotalDeductions:
		return violation("payout", "payout %d, want %d", s.Payout, s.Pot-s.TotalDeductions)
	}
	return nil
}

func isDenomination(bet int) bool {
	for _, d := range BetDenominations {
		if d == bet {
			return true
		}
	}
	return false
}
