package session

import "formeo_backend/internal/scoring"

// ValidationResult lists the required questions that are still unanswered.
type ValidationResult struct {
	Valid   bool
	Missing []string
}

// Validate checks required-question completeness against exactly the
// question set presented to the trainee: the full form in normal mode, the
// correction subset in correction mode.
func Validate(questions []PositionedQuestion, answers scoring.AnswerMap) ValidationResult {
	var missing []string
	for _, q := range questions {
		if !q.Required {
			continue
		}
		if answers[q.ID].IsEmpty() {
			missing = append(missing, q.ID)
		}
	}
	return ValidationResult{Valid: len(missing) == 0, Missing: missing}
}
