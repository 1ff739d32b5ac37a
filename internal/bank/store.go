package bank

import (
	"fmt"
	"sort"

	"github.com/quizhall/server/internal/models"
)

// Store is the immutable question bank. It is built once at startup,
// validated, and shared read-only by every request; question indices
// are the stable identifiers used everywhere else.
type Store struct {
	questions []models.Question
}

// NewStore validates the questions and wraps them in a read-only store.
func NewStore(questions []models.Question) (*Store, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	return &Store{questions: qs}, nil
}

func (s *Store) Len() int {
	return len(s.questions)
}

// Question returns the record at the given bank index.
func (s *Store) Question(index int) (models.Question, bool) {
	if index < 0 || index >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[index], true
}

// Categories returns the sorted unique category names in the bank.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, q := range s.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			categories = append(categories, q.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// CategoryCounts returns how many questions each category holds,
// sorted by category name.
func (s *Store) CategoryCounts() []models.CategoryCount {
	counts := make(map[string]int)
	for _, q := range s.questions {
		counts[q.Category]++
	}
	result := make([]models.CategoryCount, 0, len(counts))
	for _, name := range s.Categories() {
		result = append(result, models.CategoryCount{Name: name, Count: counts[name]})
	}
	return result
}

// IndicesForCategories returns the bank indices of all questions whose
// category is in the given set, in bank order.
func (s *Store) IndicesForCategories(categories []string) []int {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	var indices []int
	for i, q := range s.questions {
		if wanted[q.Category] {
			indices = append(indices, i)
		}
	}
	return indices
}

// HasCategory reports whether any question in the bank carries the category.
func (s *Store) HasCategory(category string) bool {
	for _, q := range s.questions {
		if q.Category == category {
			return true
		}
	}
	return false
}
