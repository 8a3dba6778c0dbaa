package domain

import "math/rand"

// QuizSelector picks the next unseen question out of a candidate pool.
type QuizSelector struct {
	intN func(n int) int
}

// NewQuizSelector creates a selector drawing from the shared math/rand source.
func NewQuizSelector() *QuizSelector {
	return &QuizSelector{intN: rand.Intn}
}

// NewQuizSelectorWithSource creates a selector using intN for uniform draws in [0, n).
func NewQuizSelectorWithSource(intN func(n int) int) *QuizSelector {
	return &QuizSelector{intN: intN}
}

// Next returns a question from pool whose id is not in previous.
// It returns (nil, false) when previous already covers every question of the pool,
// which includes the empty pool.
//
// Draws are uniform over the whole pool and rejected when already seen; the
// exhaustion check guarantees at least one unseen question so the loop terminates.
func (s *QuizSelector) Next(pool []*Question, previous []int64) (*Question, bool) {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	used := 0
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			used++
		}
	}
	if used == len(pool) {
		return nil, false
	}

	for {
		q := pool[s.intN(len(pool))]
		if _, ok := seen[q.ID]; !ok {
			return q, true
		}
	}
}
