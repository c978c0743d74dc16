package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   \t ", want: ""},
		{name: "lowercases", in: "BonJouR", want: "bonjour"},
		{name: "trims", in: "  réponse  ", want: "reponse"},
		{name: "strips accents", in: "90 degrés", want: "90 degres"},
		{name: "strips cedilla", in: "Leçon", want: "lecon"},
		{name: "strips degree symbol", in: "90°", want: "90"},
		{name: "strips currency", in: "1500 €", want: "1500"},
		{name: "strips percent", in: "20 %", want: "20"},
		{name: "collapses whitespace", in: "quatre   vingt\tdix", want: "quatre vingt dix"},
		{name: "symbol then collapse", in: " 45 °  C ", want: "45 c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "90 degrés", "  École Supérieure  ", "20%", "a  b   c", "À bientôt €"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}
