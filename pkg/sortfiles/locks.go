package sortfiles

import (
	"strings"
	"sync"
)

// LockRegistry hands out one mutex per case-folded file name. Entries are
// created on first use and kept for the registry's lifetime.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockRegistry creates an empty registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*sync.Mutex)}
}

// LockFor returns the lock for name. Names differing only in case share a lock.
func (r *LockRegistry) LockFor(name string) *sync.Mutex {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

// Len reports how many distinct names have been seen.
func (r *LockRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
