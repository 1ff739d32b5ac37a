package models

// Question is one record of the question bank. Its position in the
// bank is its stable identity; the record is never mutated after load.
type Question struct {
	Text               string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Category           string   `json:"category"`
	Explanation        string   `json:"explanation"`
}

// QuestionView is what the client sees for the current question.
// The correct answer index stays server-side.
type QuestionView struct {
	Text             string   `json:"question"`
	Options          []string `json:"options"`
	Category         string   `json:"category"`
	QuestionNumber   int      `json:"question_number"`
	TotalQuestions   int      `json:"total_questions"`
	RemainingSeconds int      `json:"remaining_seconds"`
}

// ReviewItem is one reconstructed wrong answer for the review page,
// with options in the order the user originally saw them.
type ReviewItem struct {
	QuestionNumber     int      `json:"question_number"`
	Text               string   `json:"question"`
	Options            []string `json:"options"`
	Explanation        string   `json:"explanation"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	UserAnswer         *int     `json:"user_answer"`
}

// CategoryCount pairs a category name with how many bank questions carry it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoriesResponse struct {
	TotalQuestions int             `json:"total_questions"`
	Categories     []CategoryCount `json:"categories"`
}

type StartTestRequest struct {
	Categories     []string `json:"categories"`
	NumQuestions   int      `json:"num_questions"`
	TimeLimit      int      `json:"time_limit"`
	ShuffleAnswers string   `json:"shuffle_answers"`
}

type StartTestResponse struct {
	TotalQuestions int   `json:"total_questions"`
	Deadline       int64 `json:"deadline"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type SubmitAnswerResponse struct {
	RedirectToNextQuestion bool `json:"redirect_to_next_question,omitempty"`
	RedirectToScore        bool `json:"redirect_to_score,omitempty"`
}

type ScoreResponse struct {
	Percent   int  `json:"percent"`
	Score     int  `json:"score"`
	Total     int  `json:"total"`
	HasReview bool `json:"has_review"`
}

type ReviewResponse struct {
	Items           []ReviewItem `json:"items,omitempty"`
	RedirectToScore bool         `json:"redirect_to_score,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Restart bool   `json:"restart,omitempty"`
}
