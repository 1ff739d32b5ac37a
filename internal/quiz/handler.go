package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quizhall/server/internal/middleware"
	"github.com/quizhall/server/internal/models"
	"github.com/quizhall/server/internal/sessions"
)

type Handler struct {
	service *Service
	store   *sessions.Store
	codec   *sessions.Codec
}

func NewHandler(service *Service, store *sessions.Store, codec *sessions.Codec) *Handler {
	return &Handler{service: service, store: store, codec: codec}
}

// RegisterRoutes wires the quiz endpoints onto the API subrouter.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/categories", h.Categories).Methods("GET")
	api.HandleFunc("/test", h.StartTest).Methods("POST")
	api.HandleFunc("/test/question", h.CurrentQuestion).Methods("GET")
	api.HandleFunc("/test/answer", h.SubmitAnswer).Methods("POST")
	api.HandleFunc("/test/score", h.Score).Methods("GET")
	api.HandleFunc("/test/review", h.Review).Methods("GET")
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

func (h *Handler) StartTest(w http.ResponseWriter, r *http.Request) {
	var req models.StartTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	sess, err := h.service.StartTest(req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Message})
			return
		}
		if errors.Is(err, ErrEmptyPool) || errors.Is(err, ErrInvalidCount) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("ERROR: start test: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start test"})
		return
	}

	// Starting a new test abandons any previous session for this client.
	if oldID, ok := middleware.SessionID(r); ok {
		h.store.Delete(oldID)
	}

	id := h.store.Create(sess)
	if err := h.codec.Issue(w, id); err != nil {
		h.store.Delete(id)
		log.Printf("ERROR: issue session cookie: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start test"})
		return
	}

	writeJSON(w, http.StatusCreated, models.StartTestResponse{
		TotalQuestions: len(sess.SelectedIndices),
		Deadline:       sess.Deadline.Unix(),
	})
}

func (h *Handler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(r)
	if !ok {
		writeRestart(w)
		return
	}

	view, state, err := h.service.CurrentQuestion(&sess)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	if state != models.TestActive {
		writeJSON(w, http.StatusOK, map[string]bool{"redirect_to_score": true})
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.SessionID(r)
	if !ok {
		writeRestart(w)
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var result SubmitResult
	err := h.store.Update(sid, func(sess *models.TestSession) error {
		var serr error
		result, serr = h.service.SubmitAnswer(sess, req.Answer)
		return serr
	})
	if errors.Is(err, sessions.ErrNotFound) {
		writeRestart(w)
		return
	}
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	if result.State == models.TestActive {
		writeJSON(w, http.StatusOK, models.SubmitAnswerResponse{RedirectToNextQuestion: true})
		return
	}
	writeJSON(w, http.StatusOK, models.SubmitAnswerResponse{RedirectToScore: true})
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	// The score page always renders; with no session it shows zeros.
	var sess *models.TestSession
	if loaded, ok := h.currentSession(r); ok {
		sess = &loaded
	}
	writeJSON(w, http.StatusOK, h.service.Score(sess))
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(r)
	if !ok {
		writeRestart(w)
		return
	}

	items := h.service.Review(&sess)
	if len(items) == 0 {
		writeJSON(w, http.StatusOK, models.ReviewResponse{RedirectToScore: true})
		return
	}
	writeJSON(w, http.StatusOK, models.ReviewResponse{Items: items})
}

// currentSession loads a snapshot of the caller's session, if any.
func (h *Handler) currentSession(r *http.Request) (models.TestSession, bool) {
	sid, ok := middleware.SessionID(r)
	if !ok {
		return models.TestSession{}, false
	}
	return h.store.Get(sid)
}

// writeSessionError maps core faults onto the error taxonomy: a broken
// session means "restart" and is discarded; broken question data is a
// server-side fault and reports as such.
func (h *Handler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSessionInvalid), errors.Is(err, ErrOutOfRange):
		if sid, ok := middleware.SessionID(r); ok {
			h.store.Delete(sid)
		}
		writeRestart(w)
	case errors.Is(err, ErrBadQuestionData):
		log.Printf("ERROR: question data fault: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Invalid question configuration"})
	default:
		log.Printf("ERROR: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeRestart(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Error:   "Invalid test session. Please start a new test.",
		Restart: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
