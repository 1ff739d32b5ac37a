package quiz

import (
	"strings"

	"github.com/quizhall/server/internal/bank"
)

// ValidateCategories checks that at least one category was selected
// and that every selection names a category present in the bank.
func ValidateCategories(selected []string, store *bank.Store) error {
	if len(selected) == 0 {
		return &ValidationError{Message: "Please select at least one category"}
	}
	for _, category := range selected {
		if !store.HasCategory(category) {
			return &ValidationError{Message: "Invalid category selection"}
		}
	}
	return nil
}

// ValidateNumQuestions checks the requested count against what the
// selected categories can supply.
func ValidateNumQuestions(numQuestions, available int) error {
	if numQuestions < 1 {
		return &ValidationError{Message: "Number of questions must be at least 1"}
	}
	if numQuestions > available {
		return validationErrorf("Only %d questions available for selected categories", available)
	}
	return nil
}

// ValidateTimeLimit checks the requested duration in minutes against
// the configured bounds.
func ValidateTimeLimit(minutes, min, max int) error {
	if minutes < min {
		return validationErrorf("Time limit must be at least %d minute(s)", min)
	}
	if minutes > max {
		return validationErrorf("Time limit cannot exceed %d minutes", max)
	}
	return nil
}

// ParseShuffleOption interprets the shuffle flag from the start form.
// An absent value means no shuffling.
func ParseShuffleOption(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, &ValidationError{Message: "Invalid shuffle option"}
	}
}
