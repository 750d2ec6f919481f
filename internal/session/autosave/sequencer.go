// Package autosave orders concurrent save requests for the same document.
//
// Every request is stamped with a per-document counter when it is issued. Sends for one
// document are serialized; a request that has been superseded by a newer stamp before
// it gets its turn is skipped, and a response whose stamp is no longer the newest is
// not applied. The newest server version seen for each document is tracked separately,
// so a later request always carries a version the optimistic lock will accept.
package autosave

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Sequencer tracks save ordering per document id
type Sequencer struct {
	mu       sync.Mutex
	issued   map[uuid.UUID]uint64
	versions map[uuid.UUID]int64
	slots    map[uuid.UUID]chan struct{}
}

// New returns an empty Sequencer.
func New() *Sequencer {
	return &Sequencer{
		issued:   make(map[uuid.UUID]uint64),
		versions: make(map[uuid.UUID]int64),
		slots:    make(map[uuid.UUID]chan struct{}),
	}
}

// Issue returns the next stamp for id. Stamps start at 1.
func (s *Sequencer) Issue(id uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[id]++
	return s.issued[id]
}

// Current reports whether stamp is the newest issued for id.
func (s *Sequencer) Current(id uuid.UUID, stamp uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued[id] == stamp
}

// Acquire waits for the send slot of id. The returned release must be called once the
// response has been handled.
func (s *Sequencer) Acquire(ctx context.Context, id uuid.UUID) (release func(), err error) {
	s.mu.Lock()
	slot, ok := s.slots[id]
	if !ok {
		slot = make(chan struct{}, 1)
		s.slots[id] = slot
	}
	s.mu.Unlock()

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-slot }) }, nil
}

// Observe records a version returned by the server for id. Older versions are ignored.
func (s *Sequencer) Observe(id uuid.UUID, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version > s.versions[id] {
		s.versions[id] = version
	}
}

// Version returns the newest version observed for id, or 0.
func (s *Sequencer) Version(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[id]
}
