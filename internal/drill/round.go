package drill

import (
	"fmt"
	"strconv"
)

// Street identifies one of the four betting rounds of a hand.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

// Streets lists every street in play order.
var Streets = [NumRounds]Street{PreFlop, Flop, Turn, River}

// String returns the display name of the street
func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the street by its display name.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street from its display name.
func (s *Street) UnmarshalText(text []byte) error {
	for _, st := range Streets {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// Round is the betting activity of one street.
type Round struct {
	Street  Street `json:"street"`
	Folds   int    `json:"folds"`   // Players who left the hand this street
	Players int    `json:"players"` // Active players after folds
	Bet     int    `json:"bet"`     // Per-player wager
}

// Amount returns the chips contributed to the pot this street.
func (r Round) Amount() int {
	return r.Bet * r.Players
}

// FoldsLabel renders the fold count the way the drill screen shows it.
func (r Round) FoldsLabel() string {
	if r.Folds == 0 {
		return "None"
	}
	return strconv.Itoa(r.Folds)
}
