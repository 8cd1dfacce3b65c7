package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/daralkutub/storefront/internal/domain"
)

// cartSnapshotStoreInMemory keeps serialized cart snapshots in a map. It
// stores the JSON bytes rather than the line slice so the round-trip through
// the serialization contract is exercised the same way the redis store does.
type cartSnapshotStoreInMemory struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewCartSnapshotStore returns an in-memory snapshot store for local
// development and tests.
func NewCartSnapshotStore() domain.CartSnapshotStore {
	return &cartSnapshotStoreInMemory{
		snapshots: make(map[string][]byte),
	}
}

// Load returns the persisted lines for the session, or (nil, nil) when no
// snapshot exists.
func (s *cartSnapshotStoreInMemory) Load(sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.snapshots[sessionID]
	if !ok {
		return nil, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	return lines, nil
}

// Save overwrites the snapshot for the session.
func (s *cartSnapshotStoreInMemory) Save(sessionID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[sessionID] = data
	return nil
}

// Delete drops the snapshot for the session.
func (s *cartSnapshotStoreInMemory) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
	return nil
}

var _ domain.CartSnapshotStore = (*cartSnapshotStoreInMemory)(nil)
