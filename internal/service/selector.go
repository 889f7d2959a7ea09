package service

import (
	"math/rand"
	"time"

	"github.com/staykeep/staykeep/internal/domain"
)

// RandomSource supplies the index pick for candidate selection. It is
// injectable so assignment is reproducible in tests.
type RandomSource interface {
	Pick(n int) int
}

type mathRandSource struct {
	rng *rand.Rand
}

func (s *mathRandSource) Pick(n int) int {
	return s.rng.Intn(n)
}

// NewRandomSource returns the production RandomSource backed by math/rand.
func NewRandomSource() RandomSource {
	return &mathRandSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Selector picks an assignee for a task from on-shift staff in the task's
// department.
type Selector struct {
	source RandomSource
}

// NewSelector creates a Selector with the given randomness source.
func NewSelector(source RandomSource) *Selector {
	return &Selector{source: source}
}

// SelectCandidate returns one eligible user chosen uniformly at random, or
// nil when no candidate is available (the task then stays in the shared
// pool). Candidates must be STAFF, on shift, and in the department; the
// repository query already filters on these, but the selector re-checks so
// it is safe on any input.
func (s *Selector) SelectCandidate(users []*domain.User, department domain.TaskType) *domain.User {
	var candidates []*domain.User
	for _, u := range users {
		if u.IsAssignable(department) {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.source.Pick(len(candidates))]
}
