package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Answer
	}{
		{"1100", Value(1100)},
		{"  55 ", Value(55)},
		{"0", Value(0)},
		{"-11", Value(-11)},
		{"1,100", Value(1100)},
		{"10_000", Value(10000)},
		{"1015 kr", Value(1015)},
		{"20KR", Value(20)},
		{"", Empty},
		{"   ", Empty},
		{"kr", Empty},
		{"abc", Empty},
		{"12abc", Empty},
		{"55.5", Empty},
		{"1 100", Empty},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAnswer(tt.input), "ParseAnswer(%q)", tt.input)
	}
}

func TestParseSubmission(t *testing.T) {
	t.Parallel()

	sub := ParseSubmission(map[Field]string{
		FieldPot:  "1100",
		FieldRake: "fifty",
	})

	require.Len(t, sub, len(Fields))
	assert.Equal(t, Value(1100), sub[FieldPot])
	assert.True(t, sub[FieldRake].IsEmpty())
	assert.True(t, sub[FieldPayout].IsEmpty())
}

func TestAnswer(t *testing.T) {
	t.Parallel()

	v, ok := Value(0).Int()
	assert.True(t, ok)
	assert.Zero(t, v)
	assert.True(t, Value(0).Matches(0))

	_, ok = Empty.Int()
	assert.False(t, ok)
	assert.False(t, Empty.Matches(0))

	assert.Equal(t, "(empty)", Empty.String())
	assert.Equal(t, "42", Value(42).String())
}

func TestField(t *testing.T) {
	t.Parallel()

	for _, f := range Fields {
		parsed, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseField("bogus")
	assert.Error(t, err)

	assert.Equal(t, "Winner Receives", FieldPayout.Label())
	assert.Equal(t, "unknown", Field(42).String())

	var f Field
	require.NoError(t, f.UnmarshalText([]byte("jackpot")))
	assert.Equal(t, FieldJackpot, f)
	assert.Error(t, f.UnmarshalText([]byte("pots")))
}
