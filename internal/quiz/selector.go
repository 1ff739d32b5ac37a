package quiz

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Selector draws random question subsets for new tests. One Selector
// is shared by every request goroutine, and *rand.Rand is not safe for
// concurrent use, so the mutex serializes all draws.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector() *Selector {
	return &Selector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// SelectIndices draws count distinct elements from pool uniformly at
// random without replacement. The returned order is the presentation
// order for the whole test and is never re-randomized later.
func (s *Selector) SelectIndices(pool []int, count int) ([]int, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if count < 1 || count > len(pool) {
		return nil, fmt.Errorf("%w: %d (pool has %d)", ErrInvalidCount, count, len(pool))
	}

	shuffled := make([]int, len(pool))
	copy(shuffled, pool)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	return shuffled[:count], nil
}
