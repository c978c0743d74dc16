package scoring

import (
	"encoding/json"
	"strconv"
	"strings"
)

type AnswerKind int

const (
	Unanswered AnswerKind = iota
	StringAnswer
	NumberAnswer
	SetAnswer
)

// Answer is the typed value a trainee gives for one question. The kind is
// fixed by the question type: text/textarea/select/radio carry a string,
// number carries a float, checkbox carries a set of option strings.
type Answer struct {
	Kind AnswerKind
	Str  string
	Num  float64
	Set  []string
}

func None() Answer               { return Answer{Kind: Unanswered} }
func String(s string) Answer     { return Answer{Kind: StringAnswer, Str: s} }
func Number(f float64) Answer    { return Answer{Kind: NumberAnswer, Num: f} }
func Set(vs ...string) Answer    { return Answer{Kind: SetAnswer, Set: vs} }

// IsEmpty reports whether the answer counts as "not given": unanswered,
// whitespace-only string, or an empty selection.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case Unanswered:
		return true
	case StringAnswer:
		return strings.TrimSpace(a.Str) == ""
	case SetAnswer:
		return len(a.Set) == 0
	default:
		return false
	}
}

// Float coerces the answer to a number. A string that does not parse yields
// ok=false, which never scores.
func (a Answer) Float() (float64, bool) {
	switch a.Kind {
	case NumberAnswer:
		return a.Num, true
	case StringAnswer:
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Str), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case StringAnswer:
		return json.Marshal(a.Str)
	case NumberAnswer:
		return json.Marshal(a.Num)
	case SetAnswer:
		if a.Set == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Set)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = None()
		return nil
	}
	switch {
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = String(str)
	case strings.HasPrefix(s, "["):
		var vs []string
		if err := json.Unmarshal(b, &vs); err != nil {
			return err
		}
		*a = Set(vs...)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*a = Number(f)
	}
	return nil
}

// AnswerMap maps question ids to the answer given for them.
type AnswerMap map[string]Answer

// Clone returns a shallow copy safe to hand outside a lock.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
