package quiz

import (
	"log"
	"strings"
	"time"

	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/config"
	"github.com/quizhall/server/internal/models"
)

// Service ties the test-building pieces together for the handlers. The
// question bank is injected and read-only; all per-client state lives
// in the session payload the caller passes in.
type Service struct {
	store    *bank.Store
	selector *Selector

	minTimeLimit     int
	maxTimeLimit     int
	defaultTimeLimit int

	now func() time.Time
}

func NewService(store *bank.Store, cfg *config.Config) *Service {
	return &Service{
		store:            store,
		selector:         NewSelector(),
		minTimeLimit:     cfg.MinTimeLimitMinutes,
		maxTimeLimit:     cfg.MaxTimeLimitMinutes,
		defaultTimeLimit: cfg.DefaultTimeLimitMinutes,
		now:              time.Now,
	}
}

// Categories returns the start-page data: bank size plus per-category counts.
func (s *Service) Categories() models.CategoriesResponse {
	return models.CategoriesResponse{
		TotalQuestions: s.store.Len(),
		Categories:     s.store.CategoryCounts(),
	}
}

// StartTest validates the request, draws the questions, builds the
// shuffle map when asked, and returns a fresh session. A zero
// NumQuestions means "all matching questions"; a zero TimeLimit means
// the configured default.
func (s *Service) StartTest(req models.StartTestRequest) (*models.TestSession, error) {
	categories := trimAll(req.Categories)
	if err := ValidateCategories(categories, s.store); err != nil {
		return nil, err
	}

	pool := s.store.IndicesForCategories(categories)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	numQuestions := req.NumQuestions
	if numQuestions == 0 {
		numQuestions = len(pool)
	}
	if err := ValidateNumQuestions(numQuestions, len(pool)); err != nil {
		return nil, err
	}

	timeLimit := req.TimeLimit
	if timeLimit == 0 {
		timeLimit = s.defaultTimeLimit
	}
	if err := ValidateTimeLimit(timeLimit, s.minTimeLimit, s.maxTimeLimit); err != nil {
		return nil, err
	}

	shuffle, err := ParseShuffleOption(req.ShuffleAnswers)
	if err != nil {
		return nil, err
	}

	selected, err := s.selector.SelectIndices(pool, numQuestions)
	if err != nil {
		return nil, err
	}

	var shuffleMap map[int]models.ShuffleEntry
	if shuffle {
		shuffleMap, err = s.selector.BuildShuffleMap(selected, s.store)
		if err != nil {
			return nil, err
		}
	}

	duration := time.Duration(timeLimit) * time.Minute
	sess, err := NewTestSession(selected, shuffleMap, duration, s.now())
	if err != nil {
		return nil, err
	}

	log.Printf("Test started: %d questions, %d minute(s), shuffle=%v", len(selected), timeLimit, shuffle)
	return sess, nil
}

// CurrentQuestion returns the view for the cursor position together
// with the session state that gates it. A non-Active state means the
// caller should send the client to the score page instead.
func (s *Service) CurrentQuestion(sess *models.TestSession) (models.QuestionView, models.TestState, error) {
	if err := checkSession(sess); err != nil {
		return models.QuestionView{}, "", err
	}

	now := s.now()
	state := StateOf(sess, now)
	if state != models.TestActive {
		return models.QuestionView{}, state, nil
	}

	view, err := CurrentQuestion(sess, s.store, now)
	if err != nil {
		return models.QuestionView{}, "", err
	}
	return view, state, nil
}

// SubmitAnswer runs one state-machine transition for the session.
func (s *Service) SubmitAnswer(sess *models.TestSession, rawAnswer string) (SubmitResult, error) {
	return SubmitAnswer(sess, s.store, rawAnswer, s.now())
}

// Score assembles the score page. It renders for any session — nil,
// fresh, expired, or complete — because the score page must never fail.
func (s *Service) Score(sess *models.TestSession) models.ScoreResponse {
	if sess == nil {
		return models.ScoreResponse{}
	}

	total := len(sess.SelectedIndices)
	score := SanitizeScore(sess.Score, total)

	return models.ScoreResponse{
		Percent:   CalculatePercentage(score, total),
		Score:     score,
		Total:     total,
		HasReview: len(sess.WrongAnswers) > 0,
	}
}

// Review reconstructs the wrong-answer review for the session.
func (s *Service) Review(sess *models.TestSession) []models.ReviewItem {
	if sess == nil {
		return nil
	}
	return BuildReview(sess.WrongAnswers, s.store, sess.ShuffleMap)
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
