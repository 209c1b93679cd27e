// Package locks provides a keyed mutex: one lock per key, created lazily and
// reclaimed when no caller holds or waits on it, so memory stays bounded
// under many keys.
package locks

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for key, creating it if absent. Callers must pair
// every Lock with an Unlock for the same key.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key and reclaims the entry once the last
// holder or waiter is gone.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("locks: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// Len reports how many keys currently have a live lock entry.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
