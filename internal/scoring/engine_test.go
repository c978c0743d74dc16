package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(NewMatcher())
}

func floatPtr(f float64) *float64 { return &f }

func TestScoreRadio(t *testing.T) {
	e := newTestEngine()
	q := Question{ID: "q1", Type: TypeRadio, Points: 2, ScoringEnabled: true, CorrectAnswers: []string{"B"}}

	res := e.Score([]Question{q}, AnswerMap{"q1": String("B")})
	assert.Equal(t, Result{Earned: 2, Possible: 2}, res)

	res = e.Score([]Question{q}, AnswerMap{"q1": String("A")})
	assert.Equal(t, Result{Earned: 0, Possible: 2}, res)
}

func TestScoreCheckboxSetEquality(t *testing.T) {
	e := newTestEngine()
	q := Question{ID: "q1", Type: TypeCheckbox, ScoringEnabled: true, CorrectAnswers: []string{"A", "C"}}

	tests := []struct {
		name   string
		given  Answer
		earned int
	}{
		{name: "order irrelevant", given: Set("C", "A"), earned: 1},
		{name: "subset fails", given: Set("A"), earned: 0},
		{name: "superset fails", given: Set("A", "C", "B"), earned: 0},
		{name: "empty never scores", given: Set(), earned: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Score([]Question{q}, AnswerMap{"q1": tc.given})
			assert.Equal(t, tc.earned, res.Earned)
			assert.Equal(t, 1, res.Possible)
		})
	}
}

func TestScoreFreeText(t *testing.T) {
	e := newTestEngine()
	q := Question{ID: "q1", Type: TypeText, ScoringEnabled: true, CorrectAnswers: []string{"90 degrés"}}

	// Accent-insensitive equality scores.
	res := e.Score([]Question{q}, AnswerMap{"q1": String("90 degres")})
	assert.Equal(t, Result{Earned: 1, Possible: 1}, res)

	// "90°" vs "90 degrés": substring but length diff 8 exceeds the bound.
	res = e.Score([]Question{q}, AnswerMap{"q1": String("90°")})
	assert.Equal(t, Result{Earned: 0, Possible: 1}, res)

	// Any reference may match.
	multi := Question{ID: "q2", Type: TypeTextarea, ScoringEnabled: true, CorrectAnswers: []string{"quatre-vingt-dix", "90 degrés"}}
	res = e.Score([]Question{multi}, AnswerMap{"q2": String("90 degres")})
	assert.Equal(t, Result{Earned: 1, Possible: 1}, res)
}

func TestScoreNumber(t *testing.T) {
	e := newTestEngine()
	q := Question{ID: "q1", Type: TypeNumber, ScoringEnabled: true, NumberCorrect: floatPtr(12)}

	res := e.Score([]Question{q}, AnswerMap{"q1": Number(12)})
	assert.Equal(t, Result{Earned: 1, Possible: 1}, res)

	// String input coerces.
	res = e.Score([]Question{q}, AnswerMap{"q1": String("12")})
	assert.Equal(t, Result{Earned: 1, Possible: 1}, res)

	// Failed coercion never scores and never panics.
	res = e.Score([]Question{q}, AnswerMap{"q1": String("abc")})
	assert.Equal(t, Result{Earned: 0, Possible: 1}, res)

	res = e.Score([]Question{q}, AnswerMap{"q1": Number(12.5)})
	assert.Equal(t, Result{Earned: 0, Possible: 1}, res)
}

func TestScoreSkipsUnscorable(t *testing.T) {
	e := newTestEngine()
	questions := []Question{
		{ID: "q1", Type: TypeText, ScoringEnabled: false, CorrectAnswers: []string{"oui"}},
		{ID: "q2", Type: TypeText, ScoringEnabled: true},                  // no reference
		{ID: "q3", Type: TypeNumber, ScoringEnabled: true},                // no reference value
		{ID: "q4", Type: TypeTextarea, Required: true, ScoringEnabled: false}, // survey-style
	}
	res := e.Score(questions, AnswerMap{"q1": String("oui"), "q2": String("non")})
	assert.Equal(t, Result{Earned: 0, Possible: 0}, res, "no scorable question means an unscored submission")
}

func TestScoreUnansweredCountsPossibleOnly(t *testing.T) {
	e := newTestEngine()
	questions := []Question{
		{ID: "q1", Type: TypeRadio, Points: 2, ScoringEnabled: true, CorrectAnswers: []string{"B"}},
		{ID: "q2", Type: TypeText, Points: 3, ScoringEnabled: true, CorrectAnswers: []string{"oui"}},
	}
	res := e.Score(questions, AnswerMap{"q1": String("B"), "q2": String("   ")})
	assert.Equal(t, Result{Earned: 2, Possible: 5}, res)
}

func TestScoreBounded(t *testing.T) {
	e := newTestEngine()
	questions := []Question{
		{ID: "q1", Type: TypeRadio, Points: 2, ScoringEnabled: true, CorrectAnswers: []string{"B"}},
		{ID: "q2", Type: TypeCheckbox, ScoringEnabled: true, CorrectAnswers: []string{"A", "C"}},
		{ID: "q3", Type: TypeNumber, Points: 4, ScoringEnabled: true, NumberCorrect: floatPtr(7)},
	}
	answerSets := []AnswerMap{
		{},
		{"q1": String("B")},
		{"q1": String("B"), "q2": Set("A", "C"), "q3": Number(7)},
		{"q1": String("zzz"), "q2": Set("D"), "q3": String("not a number")},
		{"q1": None(), "q2": Set(), "q3": String("")},
	}
	for _, answers := range answerSets {
		res := e.Score(questions, answers)
		assert.GreaterOrEqual(t, res.Earned, 0)
		assert.LessOrEqual(t, res.Earned, res.Possible)
	}
}

func TestPointsDefaultToOne(t *testing.T) {
	e := newTestEngine()
	q := Question{ID: "q1", Type: TypeRadio, ScoringEnabled: true, CorrectAnswers: []string{"A"}}
	res := e.Score([]Question{q}, AnswerMap{"q1": String("A")})
	assert.Equal(t, Result{Earned: 1, Possible: 1}, res)
}

func TestAnswerJSONRoundTrip(t *testing.T) {
	in := AnswerMap{
		"q1": String("90 degrés"),
		"q2": Number(12.5),
		"q3": Set("A", "C"),
		"q4": None(),
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out AnswerMap
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, in["q1"], out["q1"])
	assert.Equal(t, in["q2"], out["q2"])
	assert.Equal(t, in["q3"], out["q3"])
	assert.True(t, out["q4"].IsEmpty())
}
