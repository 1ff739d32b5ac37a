package quiz

import (
	"log"

	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/models"
)

// BuildReview reconstructs, for each wrong answer, the question exactly
// as the user saw it — shuffled options and relocated correct index
// included — paired with the recorded answer. A corrupt record is
// dropped with a diagnostic; one bad entry must not take down the
// whole review page.
func BuildReview(wrongAnswers []models.WrongAnswer, store *bank.Store, shuffleMap map[int]models.ShuffleEntry) []models.ReviewItem {
	items := make([]models.ReviewItem, 0, len(wrongAnswers))

	for _, wrong := range wrongAnswers {
		q, ok := store.Question(wrong.QuestionIndex)
		if !ok {
			log.Printf("WARN: dropping review entry: question index %d not in bank", wrong.QuestionIndex)
			continue
		}

		options, correctIndex, err := resolveOptions(q, shuffleMap, wrong.QuestionIndex)
		if err != nil {
			log.Printf("WARN: dropping review entry for question %d: %v", wrong.QuestionIndex, err)
			continue
		}

		// A stored answer that no longer fits the option list is
		// reported as unanswered rather than rendered out of range.
		userAnswer := wrong.UserAnswer
		if userAnswer != nil && (*userAnswer < 0 || *userAnswer >= len(options)) {
			userAnswer = nil
		}

		items = append(items, models.ReviewItem{
			QuestionNumber:     wrong.Position,
			Text:               q.Text,
			Options:            options,
			Explanation:        q.Explanation,
			CorrectAnswerIndex: correctIndex,
			UserAnswer:         userAnswer,
		})
	}

	return items
}

// CalculatePercentage returns the score as an integer percentage,
// rounding down. A zero total is defined as 0, not an error: score
// pages must always render.
func CalculatePercentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}
