package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/quizhall/server/internal/models"
)

func newActiveSession(t *testing.T, selected []int, shuffleMap map[int]models.ShuffleEntry) (*models.TestSession, time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sess, err := NewTestSession(selected, shuffleMap, 10*time.Minute, now)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return sess, now
}

func TestNewTestSession_EmptyIsError(t *testing.T) {
	_, err := NewTestSession(nil, nil, time.Minute, time.Now())
	if !errors.Is(err, ErrEmptyTest) {
		t.Fatalf("got %v, want ErrEmptyTest", err)
	}
}

func TestStateOf(t *testing.T) {
	sess, now := newActiveSession(t, []int{0, 1}, nil)

	if got := StateOf(sess, now); got != models.TestActive {
		t.Errorf("fresh session state = %s, want active", got)
	}
	if got := StateOf(sess, now.Add(9*time.Minute)); got != models.TestActive {
		t.Errorf("before deadline state = %s, want active", got)
	}
	// Deadline itself counts as expired.
	if got := StateOf(sess, now.Add(10*time.Minute)); got != models.TestExpired {
		t.Errorf("at deadline state = %s, want expired", got)
	}

	sess.CurrentPosition = 2
	if got := StateOf(sess, now); got != models.TestComplete {
		t.Errorf("finished state = %s, want complete", got)
	}
	// Expiry wins over completion.
	if got := StateOf(sess, now.Add(time.Hour)); got != models.TestExpired {
		t.Errorf("finished+expired state = %s, want expired", got)
	}
}

func TestCurrentQuestion_Idempotent(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{2, 0}, nil)

	first, err := CurrentQuestion(sess, store, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CurrentQuestion(sess, store, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Text != second.Text || first.QuestionNumber != second.QuestionNumber {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
	if sess.CurrentPosition != 0 || sess.Score != 0 || len(sess.WrongAnswers) != 0 {
		t.Errorf("read mutated session: %+v", sess)
	}

	if first.QuestionNumber != 1 || first.TotalQuestions != 2 {
		t.Errorf("numbering = %d/%d, want 1/2", first.QuestionNumber, first.TotalQuestions)
	}
	if first.RemainingSeconds != 600 {
		t.Errorf("remaining = %d, want 600", first.RemainingSeconds)
	}

	q, _ := store.Question(2)
	if first.Text != q.Text {
		t.Errorf("question text = %q, want %q", first.Text, q.Text)
	}
}

func TestCurrentQuestion_PastEnd(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{0}, nil)
	sess.CurrentPosition = 1

	if _, err := CurrentQuestion(sess, store, now); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestCurrentQuestion_UnknownBankIndex(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{999}, nil)

	if _, err := CurrentQuestion(sess, store, now); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}
}

func TestSubmitAnswer_CorrectAndWrong(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{0, 1, 2}, nil)

	// Question 0: correct index 1.
	result, err := SubmitAnswer(sess, store, "1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Correct {
		t.Error("correct answer judged wrong")
	}
	if sess.Score != 1 || sess.CurrentPosition != 1 {
		t.Errorf("score=%d position=%d, want 1/1", sess.Score, sess.CurrentPosition)
	}
	if len(sess.WrongAnswers) != 0 {
		t.Errorf("correct answer logged as wrong: %+v", sess.WrongAnswers)
	}

	// Question 1: correct index 1, submit 0.
	result, err = SubmitAnswer(sess, store, "0", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Correct {
		t.Error("wrong answer judged correct")
	}
	if sess.Score != 1 || sess.CurrentPosition != 2 {
		t.Errorf("score=%d position=%d, want 1/2", sess.Score, sess.CurrentPosition)
	}
	if len(sess.WrongAnswers) != 1 {
		t.Fatalf("expected 1 wrong answer, got %d", len(sess.WrongAnswers))
	}
	wrong := sess.WrongAnswers[0]
	if wrong.QuestionIndex != 1 || wrong.Position != 2 {
		t.Errorf("wrong answer entry = %+v", wrong)
	}
	if wrong.UserAnswer == nil || *wrong.UserAnswer != 0 {
		t.Errorf("user answer = %v, want 0", wrong.UserAnswer)
	}

	// Last question answered correctly finishes the test.
	result, err = SubmitAnswer(sess, store, "2", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != models.TestComplete {
		t.Errorf("state after last answer = %s, want complete", result.State)
	}
}

func TestSubmitAnswer_MalformedIsWrongWithAbsentAnswer(t *testing.T) {
	store := testBank(t)

	for _, raw := range []string{"abc", "", "99", "-2"} {
		sess, now := newActiveSession(t, []int{0, 1}, nil)

		result, err := SubmitAnswer(sess, store, raw, now)
		if err != nil {
			t.Fatalf("raw %q: unexpected error: %v", raw, err)
		}
		if result.Correct {
			t.Errorf("raw %q judged correct", raw)
		}
		if sess.CurrentPosition != 1 {
			t.Errorf("raw %q: position = %d, want 1", raw, sess.CurrentPosition)
		}
		if len(sess.WrongAnswers) != 1 {
			t.Fatalf("raw %q: expected 1 wrong answer, got %d", raw, len(sess.WrongAnswers))
		}
		if sess.WrongAnswers[0].UserAnswer != nil {
			t.Errorf("raw %q: stored answer %v, want absent", raw, *sess.WrongAnswers[0].UserAnswer)
		}
	}
}

func TestSubmitAnswer_ExpiredIsNoOp(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{0, 1}, nil)
	late := now.Add(11 * time.Minute)

	result, err := SubmitAnswer(sess, store, "1", late)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != models.TestExpired {
		t.Errorf("state = %s, want expired", result.State)
	}
	if sess.Score != 0 || sess.CurrentPosition != 0 || len(sess.WrongAnswers) != 0 {
		t.Errorf("expired submit mutated session: %+v", sess)
	}
}

func TestSubmitAnswer_CompleteIsNoOp(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{0}, nil)
	sess.CurrentPosition = 1

	result, err := SubmitAnswer(sess, store, "1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != models.TestComplete {
		t.Errorf("state = %s, want complete", result.State)
	}
	if sess.CurrentPosition != 1 || sess.Score != 0 {
		t.Errorf("terminal submit mutated session: %+v", sess)
	}
}

func TestSubmitAnswer_ShuffledRemapsCorrectIndex(t *testing.T) {
	store := testBank(t)

	// Question 0 has correct index 1. Under the permutation [3,1,0,2]
	// the correct option is rendered at position 1 (Order[1] == 1).
	shuffleMap := map[int]models.ShuffleEntry{
		0: {Order: []int{3, 1, 0, 2}, CorrectIndex: 1},
	}
	sess, now := newActiveSession(t, []int{0}, shuffleMap)

	result, err := SubmitAnswer(sess, store, "1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Correct {
		t.Error("relocated correct index not accepted")
	}

	// The original index must no longer be accepted when it moved.
	shuffleMap2 := map[int]models.ShuffleEntry{
		0: {Order: []int{1, 0, 2, 3}, CorrectIndex: 0},
	}
	sess2, _ := newActiveSession(t, []int{0}, shuffleMap2)
	result, err = SubmitAnswer(sess2, store, "1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Correct {
		t.Error("original index accepted despite shuffle relocation")
	}
}

func TestSubmitAnswer_ScoreBounds(t *testing.T) {
	store := testBank(t)
	sess, now := newActiveSession(t, []int{0, 1, 2, 3, 4}, nil)

	answers := []string{"1", "1", "2", "0", "1"} // all correct
	for i, raw := range answers {
		if sess.Score < 0 || sess.Score > len(sess.SelectedIndices) {
			t.Fatalf("step %d: score %d out of bounds", i, sess.Score)
		}
		if _, err := SubmitAnswer(sess, store, raw, now); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if sess.Score != 5 {
		t.Errorf("score = %d, want 5", sess.Score)
	}
	if sess.CurrentPosition != 5 {
		t.Errorf("position = %d, want 5", sess.CurrentPosition)
	}
}

func TestSanitizeScore(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{5, 10, 5},
		{0, 10, 0},
		{-3, 10, 0},
		{12, 10, 10},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := SanitizeScore(tt.score, tt.total); got != tt.want {
			t.Errorf("SanitizeScore(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}
