package questionbank

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/geoquiz/internal/quiz"
)

func TestDefault(t *testing.T) {
	set := Default()
	assert.Equal(t, DefaultSetName, set.Name)
	assert.Equal(t, SourceBuiltin, set.Source)
	assert.Len(t, set.Questions, 10)
	require.NoError(t, Validate(set))

	trueCount, falseCount := set.Counts()
	assert.Positive(t, trueCount)
	assert.Positive(t, falseCount)

	e, err := quiz.New(set.Questions)
	require.NoError(t, err)
	assert.Equal(t, "Canberra is the capital of Australia.", e.CurrentQuestion().Text)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     *Set
		wantErr error
	}{
		{
			name:    "empty name",
			set:     &Set{Questions: []quiz.Question{{Text: "a", Answer: true}}},
			wantErr: ErrEmptyName,
		},
		{
			name:    "no questions",
			set:     &Set{Name: "x"},
			wantErr: ErrNoQuestions,
		},
		{
			name:    "blank statement",
			set:     &Set{Name: "x", Questions: []quiz.Question{{Text: "   "}}},
			wantErr: ErrEmptyStatement,
		},
		{
			name: "ok",
			set: &Set{Name: "x", Questions: []quiz.Question{
				{Text: "Paris is in France.", Answer: true},
				{Text: "Lima is in Chile.", Answer: false},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.set)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Duplicates(t *testing.T) {
	set := &Set{Name: "x", Questions: []quiz.Question{
		{Text: "Paris is in France.", Answer: true},
		{Text: "Lima is in Peru.", Answer: true},
		{Text: "  paris   is in FRANCE. ", Answer: false},
	}}

	err := Validate(set)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 0, dup.First)
	assert.Equal(t, 2, dup.Second)
}

func TestShuffle(t *testing.T) {
	set := Default()
	shuffled := Shuffle(set, rand.New(rand.NewPCG(1, 2)))

	assert.Len(t, shuffled.Questions, len(set.Questions))
	assert.ElementsMatch(t, set.Questions, shuffled.Questions)
	assert.Equal(t, "Canberra is the capital of Australia.", set.Questions[0].Text, "original is untouched")
}
