package bank

import (
	"fmt"
	"strings"

	"github.com/quizhall/server/internal/models"
)

// ValidationError carries every structural problem found in a bank, so
// a bad data file reports all of its defects in one pass instead of
// failing on the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "question bank validation failed"
	}
	return fmt.Sprintf("question bank validation failed:\n  - %s",
		strings.Join(e.Problems, "\n  - "))
}

// Validate runs structural checks over a question list: non-empty text
// and category, at least 2 options, options distinct within a
// question, and correct_answer_index in bounds.
func Validate(questions []models.Question) error {
	var problems []string

	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty question text", i))
		}
		if strings.TrimSpace(q.Category) == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty category", i))
		}
		if len(q.Options) < 2 {
			problems = append(problems, fmt.Sprintf("question %d: needs at least 2 options, has %d", i, len(q.Options)))
		}

		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt] {
				problems = append(problems, fmt.Sprintf("question %d: duplicate option %q", i, opt))
			}
			seen[opt] = true
		}

		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			problems = append(problems, fmt.Sprintf(
				"question %d: correct_answer_index (%d) is out of bounds (0-%d)",
				i, q.CorrectAnswerIndex, len(q.Options)-1))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
