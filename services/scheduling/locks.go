package scheduling

import "sync"

// mentorLocks hands out one mutex per mentor id so that the
// check-overlap-then-insert sequence is serialized per mentor, never
// globally. Locks are held only across the bounded check+insert pair.
type mentorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMentorLocks() *mentorLocks {
	return &mentorLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a mentor, creating it on first use, and
// returns the unlock function.
func (ml *mentorLocks) lock(mentorID string) func() {
	ml.mu.Lock()
	m, ok := ml.locks[mentorID]
	if !ok {
		m = &sync.Mutex{}
		ml.locks[mentorID] = m
	}
	ml.mu.Unlock()

	m.Lock()
	return m.Unlock
}
