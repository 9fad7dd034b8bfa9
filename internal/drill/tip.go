package drill

// TipTier is one row of the tip schedule. It applies to pots from From
// (inclusive) up to the next tier's From.
type TipTier struct {
	From int `json:"from"`
	Tip  int `json:"tip"`
}

// tipSchedule is ordered by strictly increasing From.
var tipSchedule = []TipTier{
	{From: 0, Tip: 0},
	{From: 600, Tip: 10},
	{From: 1500, Tip: 20},
	{From: 2500, Tip: 30},
	{From: 3500, Tip: 40},
	{From: 5000, Tip: 50},
	{From: 6000, Tip: 60},
	{From: 7000, Tip: 70},
	{From: 8000, Tip: 80},
	{From: 9000, Tip: 90},
	{From: 10000, Tip: 100},
}

// Tip returns the dealer tip owed on a pot. Negative pots map to the lowest tier.
func Tip(pot int) int {
	tip := tipSchedule[0].Tip
	for _, tier := range tipSchedule {
		if pot < tier.From {
			break
		}
		tip = tier.Tip
	}
	return tip
}

// TipTiers returns a copy of the tip schedule for display.
func TipTiers() []TipTier {
	tiers := make([]TipTier, len(tipSchedule))
	copy(tiers, tipSchedule)
	return tiers
}

// TipTierIndex returns the index into TipTiers that applies to pot.
func TipTierIndex(pot int) int {
	idx := 0
	for i, tier := range tipSchedule {
		if pot < tier.From {
			break
		}
		idx = i
	}
	return idx
}
