package engine

import "sync"

// resourceLocker serializes "conflict check + insert" per resource id so two
// concurrent reservations for the same resource cannot both pass the check
// before either write lands.
type resourceLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newResourceLocker() *resourceLocker {
	return &resourceLocker{locks: map[uint]*sync.Mutex{}}
}

func (l *resourceLocker) lock(resourceID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[resourceID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[resourceID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
