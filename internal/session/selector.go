package session

import "formeo_backend/internal/scoring"

// PositionedQuestion carries the 1-based position a question has in the full
// form. During a correction the trainee keeps seeing the original numbering
// instead of a renumbered subset.
type PositionedQuestion struct {
	scoring.Question
	Position int
}

// CorrectionEntry is one grader verdict for a question of a reviewed
// submission.
type CorrectionEntry struct {
	Correcte bool   `json:"correcte"`
	Comment  string `json:"comment,omitempty"`
}

// CorrectionRecord maps question ids to grader verdicts.
type CorrectionRecord map[string]CorrectionEntry

// Numbered assigns full-form positions to every question.
func Numbered(questions []scoring.Question) []PositionedQuestion {
	out := make([]PositionedQuestion, len(questions))
	for i, q := range questions {
		out[i] = PositionedQuestion{Question: q, Position: i + 1}
	}
	return out
}

// SelectForCorrection retains, in form order, the questions whose verdict is
// explicitly wrong. Questions without a verdict are settled; verdicts for
// unknown question ids are data drift and fall away on their own.
func SelectForCorrection(questions []scoring.Question, record CorrectionRecord) []PositionedQuestion {
	var out []PositionedQuestion
	for i, q := range questions {
		entry, ok := record[q.ID]
		if !ok || entry.Correcte {
			continue
		}
		out = append(out, PositionedQuestion{Question: q, Position: i + 1})
	}
	return out
}
