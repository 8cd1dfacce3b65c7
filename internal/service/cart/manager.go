package cart

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/metrics"
)

// Manager hands out one Store per browsing session, constructing it lazily
// from the persisted snapshot on first touch. Because every session maps to
// exactly one Store, all mutations of a session serialize on that store's
// mutex even when HTTP requests arrive concurrently.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	snapshots domain.CartSnapshotStore
	logger    *log.Entry
	metrics   *metrics.StoreMetrics
}

// NewManager creates a manager over the given snapshot store.
func NewManager(snapshots domain.CartSnapshotStore, logger *log.Entry, m *metrics.StoreMetrics) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Manager{
		stores:    make(map[string]*Store),
		snapshots: snapshots,
		logger:    logger,
		metrics:   m,
	}
}

// Session returns the store for the session id, creating it if needed.
func (m *Manager) Session(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	var opts []Option
	if m.metrics != nil {
		opts = append(opts, WithMetrics(m.metrics))
	}
	store := NewStore(sessionID, m.snapshots, m.logger, opts...)
	m.stores[sessionID] = store
	return store
}

// Forget drops the cached store for a session. The persisted snapshot (if
// any) is left alone, so a later Session call reloads it.
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
