package randutil

// Script replays a fixed sequence of results. Each queued value is clamped into
// the requested range, and an exhausted script returns min. It exists for tests
// that need to assert exact generator output.
type Script struct {
	values []int
	index  int
}

// NewScript creates a Script that will return values in order.
func NewScript(values ...int) *Script {
	return &Script{values: values}
}

// Int implements Source.
func (s *Script) Int(min, max int) int {
	checkRange(min, max)
	if s.index >= len(s.values) {
		return min
	}
	v := s.values[s.index]
	s.index++
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Remaining reports how many scripted values have not been consumed.
func (s *Script) Remaining() int {
	return len(s.values) - s.index
}
