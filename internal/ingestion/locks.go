package ingestion

import "sync"

// documentLocks serializes ingestion runs per document key. Two concurrent
// runs for the same document would both read the same skip list and
// double-import every item, so the second one waits.
type documentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the key's lock is held and returns the release func.
func (d *documentLocks) acquire(key string) func() {
	d.mu.Lock()
	lock, exists := d.locks[key]
	if !exists {
		lock = new(sync.Mutex)
		d.locks[key] = lock
	}
	d.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
