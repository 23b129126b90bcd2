package mentorRepo

import (
	"context"
	"sort"
	"sync"

	"mentorhub/models"
)

// MemoryMentorRepo is an in-memory MentorRepository for tests and local
// development.
type MemoryMentorRepo struct {
	mu      sync.RWMutex
	mentors map[string]models.Mentor
}

// NewMemoryMentorRepo constructs an in-memory repository seeded with the
// given mentors.
func NewMemoryMentorRepo(mentors ...models.Mentor) *MemoryMentorRepo {
	repo := &MemoryMentorRepo{mentors: make(map[string]models.Mentor, len(mentors))}
	for _, m := range mentors {
		repo.mentors[m.ID] = m
	}
	return repo
}

func (r *MemoryMentorRepo) GetByID(_ context.Context, id string) (*models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mentors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryMentorRepo) List(_ context.Context) ([]models.Mentor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Mentor, 0, len(r.mentors))
	for _, m := range r.mentors {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
