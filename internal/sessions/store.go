package sessions

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quizhall/server/internal/models"
)

// ErrNotFound reports a session handle that is unknown or already
// swept. The caller should have the client start a new test.
var ErrNotFound = errors.New("session not found")

// Store holds every live test session in memory, keyed by an opaque
// ID. Sessions do not survive a restart. The lock guards the map and
// every mutation of a stored session: two requests for the same handle
// serialize here, so a duplicate submit cannot corrupt the payload —
// it just advances the cursor twice, as the state machine documents.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.TestSession
	lifetime time.Duration
}

func NewStore(lifetime time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*models.TestSession),
		lifetime: lifetime,
	}
}

// Create assigns the session a fresh ID and stores it, replacing
// nothing: each started test gets its own handle.
func (s *Store) Create(sess *models.TestSession) string {
	id := uuid.NewString()
	sess.ID = id

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id
}

// Get returns a snapshot of the session. The copy is taken under the
// read lock so renders never observe a half-applied mutation, and it
// is deep: the snapshot shares no slices or maps with the live
// session, so a concurrent Update cannot write through it.
func (s *Store) Get(id string) (models.TestSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		return models.TestSession{}, false
	}
	return snapshot(sess), true
}

func snapshot(sess *models.TestSession) models.TestSession {
	out := *sess

	out.SelectedIndices = make([]int, len(sess.SelectedIndices))
	copy(out.SelectedIndices, sess.SelectedIndices)

	out.WrongAnswers = make([]models.WrongAnswer, len(sess.WrongAnswers))
	copy(out.WrongAnswers, sess.WrongAnswers)

	if sess.ShuffleMap != nil {
		out.ShuffleMap = make(map[int]models.ShuffleEntry, len(sess.ShuffleMap))
		for idx, entry := range sess.ShuffleMap {
			order := make([]int, len(entry.Order))
			copy(order, entry.Order)
			out.ShuffleMap[idx] = models.ShuffleEntry{Order: order, CorrectIndex: entry.CorrectIndex}
		}
	}
	return out
}

// Update runs fn against the stored session under the write lock. The
// closure's changes are visible to later requests; its error aborts
// nothing but is passed through.
func (s *Store) Update(id string, fn func(*models.TestSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		return ErrNotFound
	}
	return fn(sess)
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports how many sessions are held, swept or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions past their lifetime and returns how many went.
func (s *Store) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a ticker until stop is closed.
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("Swept %d expired session(s)", n)
				}
			case <-stop:
				return
			}
		}
	}()
}

// expired is the lifetime check, distinct from the test deadline: a
// finished test stays viewable for score/review until the session ages out.
func (s *Store) expired(sess *models.TestSession, now time.Time) bool {
	if s.lifetime <= 0 {
		return false
	}
	return now.After(sess.CreatedAt.Add(s.lifetime))
}
