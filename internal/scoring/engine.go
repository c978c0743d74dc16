package scoring

// QuestionType enumerates the supported input widgets.
type QuestionType string

const (
	TypeText     QuestionType = "text"
	TypeTextarea QuestionType = "textarea"
	TypeSelect   QuestionType = "select"
	TypeRadio    QuestionType = "radio"
	TypeCheckbox QuestionType = "checkbox"
	TypeNumber   QuestionType = "number"
)

// Question is the minimal view the engine needs; the persistence layer maps
// its own records onto it.
type Question struct {
	ID             string
	Type           QuestionType
	Label          string
	Required       bool
	Options        []string
	Points         int
	ScoringEnabled bool
	CorrectAnswers []string
	NumberCorrect  *float64
}

// Scorable reports whether the question contributes to the score: scoring
// must be enabled and a usable reference must exist.
func (q Question) Scorable() bool {
	if !q.ScoringEnabled {
		return false
	}
	if q.Type == TypeNumber {
		return q.NumberCorrect != nil || len(q.CorrectAnswers) > 0
	}
	return len(q.CorrectAnswers) > 0
}

// EffectivePoints defaults to 1 when no weight was set.
func (q Question) EffectivePoints() int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// Result is the outcome of scoring one submission. Possible == 0 means no
// question was scorable and the submission must stay unscored.
type Result struct {
	Earned   int
	Possible int
}

type Engine struct {
	matcher *Matcher
}

func NewEngine(matcher *Matcher) *Engine {
	return &Engine{matcher: matcher}
}

// Score walks the questions and sums earned/possible points. Unanswered
// questions count toward possible but never earn; answers of the wrong
// shape degrade to no match rather than failing.
func (e *Engine) Score(questions []Question, answers AnswerMap) Result {
	var res Result
	for _, q := range questions {
		if !q.Scorable() {
			continue
		}
		pts := q.EffectivePoints()
		res.Possible += pts

		ans, ok := answers[q.ID]
		if !ok || ans.IsEmpty() {
			continue
		}
		if e.correct(q, ans) {
			res.Earned += pts
		}
	}
	return res
}

func (e *Engine) correct(q Question, ans Answer) bool {
	switch q.Type {
	case TypeSelect, TypeRadio:
		if ans.Kind != StringAnswer {
			return false
		}
		for _, ref := range q.CorrectAnswers {
			if ans.Str == ref {
				return true
			}
		}
		return false

	case TypeCheckbox:
		if ans.Kind != SetAnswer {
			return false
		}
		return setEqual(ans.Set, q.CorrectAnswers)

	case TypeText, TypeTextarea:
		if ans.Kind != StringAnswer {
			return false
		}
		for _, ref := range q.CorrectAnswers {
			if e.matcher.Equivalent(ans.Str, ref) {
				return true
			}
		}
		return false

	case TypeNumber:
		v, ok := ans.Float()
		if !ok {
			return false
		}
		if q.NumberCorrect != nil {
			return v == *q.NumberCorrect
		}
		return false

	default:
		return false
	}
}

func setEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	if len(seen) != len(b) {
		return false
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			return false
		}
	}
	return true
}
