package drill

import (
	"encoding/json"
	"testing"

	"github.com/lox/potdrill/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeWorkedExample(t *testing.T) {
	t.Parallel()

	s := NewGenerator(workedExample()).Generate()
	result := Grade(s, Submission{
		FieldPot:     Value(1100),
		FieldRake:    Value(55),
		FieldTip:     Value(10),
		FieldJackpot: Value(20),
		FieldPayout:  Value(1015),
	})

	assert.True(t, result.AllCorrect)
	assert.Equal(t, 5, result.CorrectCount())
	assert.Equal(t, "Perfect! All calculations correct.", result.Headline())
}

func TestGradeIsReflexive(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(randutil.New(2024))
	for i := 0; i < 500; i++ {
		s := gen.Generate()
		require.True(t, Grade(s, SubmissionOf(s)).AllCorrect)
	}
}

func TestGradeEmptyIsAlwaysWrong(t *testing.T) {
	t.Parallel()

	s := NewGenerator(randutil.New(3)).Generate()

	t.Run("explicit empty", func(t *testing.T) {
		sub := Submission{}
		for _, f := range Fields {
			sub[f] = Empty
		}
		result := Grade(s, sub)
		assert.False(t, result.AllCorrect)
		assert.Zero(t, result.CorrectCount())
		for _, f := range Fields {
			v := result.Verdicts[f]
			assert.False(t, v.Correct, f.String())
			assert.True(t, v.Submitted.IsEmpty())
			assert.Equal(t, s.Value(f), v.Canonical)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		result := Grade(s, nil)
		assert.False(t, result.AllCorrect)
		assert.Len(t, result.Verdicts, len(Fields))
	})

	t.Run("empty never equals zero", func(t *testing.T) {
		// A pot under 600 has a canonical tip of 0; Empty must still miss it.
		small := NewScenario(3, [NumRounds]Round{
			{Street: PreFlop, Players: 3, Bet: 50},
			{Street: Flop, Players: 3, Bet: 50},
			{Street: Turn, Players: 2, Folds: 1, Bet: 50},
			{Street: River, Players: 2, Bet: 50},
		})
		require.Equal(t, 0, small.Tip)
		result := Grade(small, Submission{FieldTip: Empty})
		assert.False(t, result.Verdicts[FieldTip].Correct)
	})
}

func TestGradeIsExactMatch(t *testing.T) {
	t.Parallel()

	s := NewGenerator(workedExample()).Generate()

	for _, field := range Fields {
		for _, delta := range []int{-1, 1} {
			sub := SubmissionOf(s)
			sub[field] = Value(s.Value(field) + delta)

			result := Grade(s, sub)
			assert.False(t, result.AllCorrect)
			assert.Equal(t, 4, result.CorrectCount())
			for _, other := range Fields {
				assert.Equal(t, other != field, result.Verdicts[other].Correct,
					"%s off by %d should only fail %s", field, delta, field)
			}
		}
	}
}

func TestVerdictCorrection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verdict Verdict
		field   Field
		want    string
	}{
		{
			name:    "correct",
			verdict: Verdict{Submitted: Value(1100), Canonical: 1100, Correct: true},
			field:   FieldPot,
			want:    "Final Pot: 1100 kr",
		},
		{
			name:    "wrong value",
			verdict: Verdict{Submitted: Value(50), Canonical: 55},
			field:   FieldRake,
			want:    "Rake: You said 50 kr, correct is 55 kr",
		},
		{
			name:    "empty",
			verdict: Verdict{Submitted: Empty, Canonical: 1015},
			field:   FieldPayout,
			want:    "Winner Receives: You said (empty), correct is 1015 kr",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.verdict.Correction(tt.field, "kr"))
		})
	}

	assert.Equal(t, "Tip: 10", Verdict{Canonical: 10, Correct: true}.Correction(FieldTip, ""))
}

func TestGradeResultJSON(t *testing.T) {
	t.Parallel()

	s := NewGenerator(workedExample()).Generate()
	result := Grade(s, Submission{FieldPot: Value(1100)})

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		Verdicts map[string]struct {
			Submitted *int `json:"submitted"`
			Canonical int  `json:"canonical"`
			Correct   bool `json:"correct"`
		} `json:"verdicts"`
		AllCorrect bool `json:"allCorrect"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.False(t, decoded.AllCorrect)
	require.Contains(t, decoded.Verdicts, "pot")
	require.NotNil(t, decoded.Verdicts["pot"].Submitted)
	assert.Equal(t, 1100, *decoded.Verdicts["pot"].Submitted)
	assert.True(t, decoded.Verdicts["pot"].Correct)
	assert.Nil(t, decoded.Verdicts["payout"].Submitted)
	assert.Equal(t, 1015, decoded.Verdicts["payout"].Canonical)
}
