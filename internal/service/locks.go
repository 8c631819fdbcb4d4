package service

import (
	"sync"

	"github.com/google/uuid"
)

// newID mints entity IDs in the same UUID format the store generates.
func newID() string { return uuid.New().String() }

// lockSet hands out one mutex per key. Room-keyed locks serialize
// mutations scoped to a single room so member caps, rank checks and
// split snapshots hold under concurrent requests; user-keyed locks
// serialize membership creation so the cross-room membership cap holds.
// Reads never take these locks.
type lockSet struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockSet() *lockSet {
	return &lockSet{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the key's mutex and returns the unlock func.
func (l *lockSet) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
