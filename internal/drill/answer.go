package drill

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one of the values a learner must compute.
type Field int

const (
	FieldPot Field = iota
	FieldRake
	FieldTip
	FieldJackpot
	FieldPayout
)

// Fields lists the graded fields in answer-sheet order.
var Fields = []Field{FieldPot, FieldRake, FieldTip, FieldJackpot, FieldPayout}

var fieldNames = map[Field]string{
	FieldPot:     "pot",
	FieldRake:    "rake",
	FieldTip:     "tip",
	FieldJackpot: "jackpot",
	FieldPayout:  "payout",
}

var fieldLabels = map[Field]string{
	FieldPot:     "Final Pot",
	FieldRake:    "Rake",
	FieldTip:     "Tip",
	FieldJackpot: "Jackpot",
	FieldPayout:  "Winner Receives",
}

// String returns the wire name of the field
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Label returns the human-readable name of the field
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return "Unknown"
}

// MarshalText encodes the field by its wire name, so maps keyed by Field
// serialize as {"pot": ...}.
func (f Field) MarshalText() ([]byte, error) {
	if _, ok := fieldNames[f]; !ok {
		return nil, fmt.Errorf("unknown field %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a wire name.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseField looks up a field by wire name.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// Answer is a learner's value for one field, or Empty.
type Answer struct {
	value int
	set   bool
}

// Empty is the answer for a blank or unparseable input.
var Empty = Answer{}

// Value wraps an integer answer.
func Value(v int) Answer {
	return Answer{value: v, set: true}
}

// Int returns the answer and whether one was given.
func (a Answer) Int() (int, bool) {
	return a.value, a.set
}

// IsEmpty reports whether no value was given
func (a Answer) IsEmpty() bool {
	return !a.set
}

// Matches reports exact equality with a canonical value. Empty never matches.
func (a Answer) Matches(canonical int) bool {
	return a.set && a.value == canonical
}

func (a Answer) String() string {
	if !a.set {
		return "(empty)"
	}
	return strconv.Itoa(a.value)
}

// MarshalJSON encodes Empty as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.value)), nil
}

// UnmarshalJSON decodes null as Empty.
func (a *Answer) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Empty
		return nil
	}
	v, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("answer must be an integer or null: %w", err)
	}
	*a = Value(v)
	return nil
}

// Submission maps each field to the learner's answer. Missing fields are Empty.
type Submission map[Field]Answer

// ParseAnswer normalizes raw learner text. Surrounding whitespace, a trailing
// "kr" unit and "," or "_" digit separators are accepted; anything else that
// is not a base-10 integer becomes Empty.
func ParseAnswer(text string) Answer {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), "kr"))
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	if s == "" {
		return Empty
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Empty
	}
	return Value(v)
}

// ParseSubmission normalizes a full answer sheet of raw text.
func ParseSubmission(raw map[Field]string) Submission {
	sub := make(Submission, len(Fields))
	for _, f := range Fields {
		sub[f] = ParseAnswer(raw[f])
	}
	return sub
}

// SubmissionOf returns the submission that answers every field of s correctly.
func SubmissionOf(s Scenario) Submission {
	sub := make(Submission, len(Fields))
	for _, f := range Fields {
		sub[f] = Value(s.Value(f))
	}
	return sub
}
