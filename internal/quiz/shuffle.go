package quiz

import (
	"fmt"

	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/models"
)

// BuildShuffleMap generates, for each selected question, a uniformly
// random permutation of its options and the relocated position of the
// correct answer within that permutation. The map is built once at
// session creation and immutable thereafter: it drives both rendering
// and the reinterpretation of submitted answers.
func (s *Selector) BuildShuffleMap(selectedIndices []int, store *bank.Store) (map[int]models.ShuffleEntry, error) {
	shuffleMap := make(map[int]models.ShuffleEntry, len(selectedIndices))

	for _, idx := range selectedIndices {
		q, ok := store.Question(idx)
		if !ok {
			return nil, fmt.Errorf("%w: question index %d", ErrOutOfRange, idx)
		}

		s.mu.Lock()
		order := s.rng.Perm(len(q.Options))
		s.mu.Unlock()

		// Inverse lookup: the rendered position whose target is the
		// original correct index.
		correctIndex := -1
		for pos, orig := range order {
			if orig == q.CorrectAnswerIndex {
				correctIndex = pos
				break
			}
		}
		if correctIndex < 0 {
			return nil, fmt.Errorf("%w: question %d", ErrBadQuestionData, idx)
		}

		shuffleMap[idx] = models.ShuffleEntry{Order: order, CorrectIndex: correctIndex}
	}

	return shuffleMap, nil
}

// shuffleEntryFor resolves the optional shuffle entry for a question.
// A nil map and a missing entry behave identically: no shuffling.
func shuffleEntryFor(shuffleMap map[int]models.ShuffleEntry, questionIndex int) (models.ShuffleEntry, bool) {
	if shuffleMap == nil {
		return models.ShuffleEntry{}, false
	}
	entry, ok := shuffleMap[questionIndex]
	return entry, ok
}

// applyShuffle reorders a question's options per the entry and returns
// them with the relocated correct index. Entries come back out of the
// session payload, so the permutation is re-checked before use.
func applyShuffle(q models.Question, entry models.ShuffleEntry) ([]string, int, error) {
	if err := checkShuffleEntry(entry, len(q.Options)); err != nil {
		return nil, 0, err
	}

	options := make([]string, len(entry.Order))
	for pos, orig := range entry.Order {
		options[pos] = q.Options[orig]
	}
	return options, entry.CorrectIndex, nil
}

// checkShuffleEntry verifies the permutation is a bijection over
// [0, numOptions) and that the relocated correct index is in range.
func checkShuffleEntry(entry models.ShuffleEntry, numOptions int) error {
	if len(entry.Order) != numOptions {
		return fmt.Errorf("%w: shuffle order has %d entries for %d options", ErrSessionInvalid, len(entry.Order), numOptions)
	}
	seen := make([]bool, numOptions)
	for _, orig := range entry.Order {
		if orig < 0 || orig >= numOptions || seen[orig] {
			return fmt.Errorf("%w: shuffle order is not a permutation", ErrSessionInvalid)
		}
		seen[orig] = true
	}
	if entry.CorrectIndex < 0 || entry.CorrectIndex >= numOptions {
		return fmt.Errorf("%w: shuffled correct index %d out of range", ErrSessionInvalid, entry.CorrectIndex)
	}
	return nil
}

// resolveOptions returns the options and correct index as the user
// sees them: shuffled when an entry exists, original otherwise.
func resolveOptions(q models.Question, shuffleMap map[int]models.ShuffleEntry, questionIndex int) ([]string, int, error) {
	if entry, ok := shuffleEntryFor(shuffleMap, questionIndex); ok {
		return applyShuffle(q, entry)
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return nil, 0, fmt.Errorf("%w: correct index %d out of range", ErrBadQuestionData, q.CorrectAnswerIndex)
	}
	return q.Options, q.CorrectAnswerIndex, nil
}
