package quiz

import (
	"fmt"
	"time"

	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/models"
)

// NewTestSession initializes the state of a fresh test: cursor at 0,
// empty score and wrong-answer log, deadline fixed at now + duration.
// The deadline never changes after this point.
func NewTestSession(selectedIndices []int, shuffleMap map[int]models.ShuffleEntry, duration time.Duration, now time.Time) (*models.TestSession, error) {
	if len(selectedIndices) == 0 {
		return nil, ErrEmptyTest
	}

	return &models.TestSession{
		SelectedIndices: selectedIndices,
		CurrentPosition: 0,
		Score:           0,
		WrongAnswers:    []models.WrongAnswer{},
		ShuffleMap:      shuffleMap,
		Deadline:        now.Add(duration),
		CreatedAt:       now,
	}, nil
}

// StateOf returns the session's lifecycle state at the given instant.
// The deadline is server-authoritative: once it passes, the session is
// Expired regardless of position, and any client-supplied remaining
// time is display-only. Expired and Complete are one-way.
func StateOf(sess *models.TestSession, now time.Time) models.TestState {
	if !now.Before(sess.Deadline) {
		return models.TestExpired
	}
	if sess.CurrentPosition >= len(sess.SelectedIndices) {
		return models.TestComplete
	}
	return models.TestActive
}

// checkSession rejects structurally broken session payloads before any
// read or transition touches them.
func checkSession(sess *models.TestSession) error {
	if sess == nil || len(sess.SelectedIndices) == 0 {
		return fmt.Errorf("%w: no selected questions", ErrSessionInvalid)
	}
	if sess.CurrentPosition < 0 {
		return fmt.Errorf("%w: negative position", ErrSessionInvalid)
	}
	return nil
}

// CurrentQuestion produces the rendering view for the question at the
// cursor. It is side-effect-free: calling it repeatedly at the same
// position returns identical data, so a render can be retried safely.
// The correct answer index never leaves this package.
func CurrentQuestion(sess *models.TestSession, store *bank.Store, now time.Time) (models.QuestionView, error) {
	if err := checkSession(sess); err != nil {
		return models.QuestionView{}, err
	}
	if sess.CurrentPosition >= len(sess.SelectedIndices) {
		return models.QuestionView{}, ErrOutOfRange
	}

	questionIndex := sess.SelectedIndices[sess.CurrentPosition]
	q, ok := store.Question(questionIndex)
	if !ok {
		return models.QuestionView{}, fmt.Errorf("%w: question index %d not in bank", ErrSessionInvalid, questionIndex)
	}

	options, _, err := resolveOptions(q, sess.ShuffleMap, questionIndex)
	if err != nil {
		return models.QuestionView{}, err
	}

	remaining := int(sess.Deadline.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	return models.QuestionView{
		Text:             q.Text,
		Options:          options,
		Category:         q.Category,
		QuestionNumber:   sess.CurrentPosition + 1,
		TotalQuestions:   len(sess.SelectedIndices),
		RemainingSeconds: remaining,
	}, nil
}

// SubmitResult reports what a submission did. State is the state that
// decided the outcome: Expired or Complete means the submission was a
// no-op; otherwise the cursor advanced and State reflects the session
// after the advance.
type SubmitResult struct {
	State   models.TestState
	Correct bool
}

// SubmitAnswer scores the answer for the question at the cursor and
// advances. The deadline is re-checked first to close the race between
// render and submit. A wrong or malformed answer appends one entry to
// the wrong-answer log; the cursor advances by exactly 1 either way,
// as the final step.
//
// A replayed submit advances again: the operation is deliberately not
// idempotent.
func SubmitAnswer(sess *models.TestSession, store *bank.Store, rawAnswer string, now time.Time) (SubmitResult, error) {
	if err := checkSession(sess); err != nil {
		return SubmitResult{}, err
	}

	if state := StateOf(sess, now); state != models.TestActive {
		return SubmitResult{State: state}, nil
	}

	questionIndex := sess.SelectedIndices[sess.CurrentPosition]
	q, ok := store.Question(questionIndex)
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: question index %d not in bank", ErrSessionInvalid, questionIndex)
	}

	_, correctIndex, err := resolveOptions(q, sess.ShuffleMap, questionIndex)
	if err != nil {
		return SubmitResult{}, err
	}

	userAnswer := ParseUserAnswer(rawAnswer, len(q.Options))

	correct := userAnswer != nil && *userAnswer == correctIndex
	if correct {
		sess.Score++
	} else {
		sess.WrongAnswers = append(sess.WrongAnswers, models.WrongAnswer{
			QuestionIndex: questionIndex,
			UserAnswer:    userAnswer,
			Position:      sess.CurrentPosition + 1,
		})
	}

	sess.CurrentPosition++

	return SubmitResult{State: StateOf(sess, now), Correct: correct}, nil
}

// SanitizeScore clamps a stored score to [0, total] at read time. An
// out-of-range score should be unreachable, but a score page must
// never render an impossible value.
func SanitizeScore(score, total int) int {
	if score < 0 {
		return 0
	}
	if score > total {
		return total
	}
	return score
}
