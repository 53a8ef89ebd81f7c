package store

import "sync"

var nonReentrantMutex sync.Mutex

// Access is a scoped hold on a Store for the duration of one load sequence.
type Access struct {
	store  Store
	locked bool
	once   sync.Once
}

// Acquire starts a load sequence on s. If s is not reentrant, Acquire blocks
// until no other load sequence on any non-reentrant store is active. The
// caller must call Release, typically with defer.
func Acquire(s Store) *Access {
	a := &Access{store: s}

	if !s.Reentrant() {
		nonReentrantMutex.Lock()
		a.locked = true
	}

	return a
}

// Store returns the store being accessed.
func (a *Access) Store() Store {
	return a.store
}

// Release ends the load sequence. Calling it more than once has no effect.
func (a *Access) Release() {
	a.once.Do(func() {
		if a.locked {
			nonReentrantMutex.Unlock()
		}
	})
}
