package models

import "time"

// TestState is the lifecycle state of a test session. Expired and
// Complete are terminal.
type TestState string

const (
	TestActive   TestState = "active"
	TestExpired  TestState = "expired"
	TestComplete TestState = "complete"
)

// ShuffleEntry records how one question's options were permuted for
// this session. Order is a bijection over [0, numOptions): the option
// rendered at position i is the original option Order[i]. CorrectIndex
// is the position within the permutation that maps to the original
// correct answer, i.e. Order[CorrectIndex] == original correct index.
type ShuffleEntry struct {
	Order        []int `json:"order"`
	CorrectIndex int   `json:"correct_index"`
}

// WrongAnswer is one entry of the append-only wrong-answer log.
// UserAnswer is nil when the question was skipped or the submission
// was malformed.
type WrongAnswer struct {
	QuestionIndex int  `json:"question_index"`
	UserAnswer    *int `json:"user_answer"`
	Position      int  `json:"question_number"`
}

// TestSession is the server-held state of one client's test. It is the
// entire contract a session store must persist and return unchanged.
type TestSession struct {
	ID              string               `json:"id"`
	SelectedIndices []int                `json:"selected_question_indices"`
	CurrentPosition int                  `json:"current_question_index"`
	Score           int                  `json:"score"`
	WrongAnswers    []WrongAnswer        `json:"wrong_answers"`
	ShuffleMap      map[int]ShuffleEntry `json:"shuffle_mappings,omitempty"`
	Deadline        time.Time            `json:"deadline"`
	CreatedAt       time.Time            `json:"created_at"`
}
