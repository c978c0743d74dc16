package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherEquivalent(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name   string
		answer string
		ref    string
		want   bool
	}{
		{name: "exact", answer: "paris", ref: "paris", want: true},
		{name: "exact after accents", answer: "90 degres", ref: "90 degrés", want: true},
		{name: "case and spacing", answer: "  PARIS ", ref: "paris", want: true},
		{name: "substring within bound", answer: "90", ref: "90 deg", want: true},
		{name: "substring at bound", answer: "90", ref: "90 degre", want: false},
		// "90°" normalizes to "90", "90 degrés" to "90 degres": substring holds
		// but the length difference is 8, over the bound of 5.
		{name: "degree symbol vs full word", answer: "90°", ref: "90 degrés", want: false},
		{name: "short substring of long sentence", answer: "a", ref: "a very long reference answer", want: false},
		{name: "unrelated", answer: "bleu", ref: "rouge", want: false},
		{name: "both empty", answer: "", ref: "", want: true},
		{name: "empty vs text", answer: "", ref: "rouge", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Equivalent(tc.answer, tc.ref))
		})
	}
}

func TestMatcherSymmetricOnExactMatch(t *testing.T) {
	m := NewMatcher()
	pairs := [][2]string{
		{"90 degrés", "90 degres"},
		{"École", "ecole"},
		{"  deux mots ", "deux   mots"},
	}
	for _, p := range pairs {
		assert.True(t, m.Equivalent(p[0], p[1]))
		assert.True(t, m.Equivalent(p[1], p[0]))
	}
}

func TestMatcherConfigurableBound(t *testing.T) {
	wide := NewMatcher(WithMaxLengthDiff(10))
	assert.True(t, wide.Equivalent("90°", "90 degrés"))

	strict := NewMatcher(WithMaxLengthDiff(0))
	assert.False(t, strict.Equivalent("90", "90 deg"))
	assert.True(t, strict.Equivalent("90", "90"))
}
