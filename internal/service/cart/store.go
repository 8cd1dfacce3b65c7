// Package cart owns the authoritative line-item state of a browsing session.
// Every mutation runs as one atomic read-modify-write-persist step under the
// store's mutex, so rapid repeated calls (double-click add-to-cart) can never
// lose an update.
package cart

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/metrics"
)

// Store holds the cart of one browsing session. Construct it with NewStore;
// the zero value is not usable.
type Store struct {
	mu        sync.Mutex
	sessionID string
	lines     []domain.CartLine
	snapshots domain.CartSnapshotStore
	logger    *log.Entry
	metrics   *metrics.StoreMetrics
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics attaches cart instrumentation.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore loads the persisted snapshot for the session and returns a ready
// store. A corrupt or unreadable snapshot is logged and replaced with an
// empty cart; construction never fails because of persistence.
func NewStore(sessionID string, snapshots domain.CartSnapshotStore, logger *log.Entry, opts ...Option) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}

	s := &Store{
		sessionID: sessionID,
		snapshots: snapshots,
		logger:    logger.WithField("session_id", sessionID),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	lines, err := snapshots.Load(sessionID)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load cart snapshot, starting empty")
		return s
	}
	s.lines = lines
	return s
}

// AddItem puts a book into the cart. If a line for the same book already
// exists its quantity is incremented and the original snapshot fields are
// kept; otherwise a new line is appended. Quantities below 1 are rejected.
func (s *Store) AddItem(book domain.Book, quantity int32) error {
	if quantity < 1 {
		return domain.ErrQuantityInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].BookID == book.ID {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, domain.NewCartLine(book, quantity, s.now().UTC()))
	}

	s.persistLocked()
	s.record("add")
	return nil
}

// RemoveItem drops the line with the given book id entirely, regardless of
// quantity. Removing an absent id is a no-op, not an error.
func (s *Store) RemoveItem(bookID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].BookID == bookID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked()
			s.record("remove")
			return
		}
	}
}

// UpdateQuantity sets a line's quantity directly. A quantity of zero or less
// is rejected and the line is left untouched; callers that want the line gone
// must use RemoveItem.
func (s *Store) UpdateQuantity(bookID string, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrQuantityInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].BookID == bookID {
			s.lines[i].Quantity = quantity
			s.persistLocked()
			s.record("update")
			return nil
		}
	}
	return domain.ErrLineNotFound
}

// Clear empties the cart. Used after a successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.snapshots.Delete(s.sessionID); err != nil {
		s.logger.WithError(err).Warn("failed to delete cart snapshot")
		if s.metrics != nil {
			s.metrics.RecordSnapshotFailure()
		}
	}
	s.record("clear")
}

// Lines returns a copy of the current line items in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItemCount is the sum of all quantities, recomputed from the lines.
func (s *Store) TotalItemCount() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int32
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// TotalPrice is the sum of price times quantity over all lines, in minor
// currency units, recomputed from the lines.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum int64
	for _, line := range s.lines {
		sum += int64(line.Quantity) * line.PriceMinor
	}
	return sum
}

// persistLocked writes the full line collection under the session key.
// Persistence failures are logged and counted, never returned: callers must
// always end up with a usable cart.
func (s *Store) persistLocked() {
	if err := s.snapshots.Save(s.sessionID, s.lines); err != nil {
		s.logger.WithError(err).Warn("failed to persist cart snapshot")
		if s.metrics != nil {
			s.metrics.RecordSnapshotFailure()
		}
	}
}

func (s *Store) record(operation string) {
	if s.metrics != nil {
		s.metrics.RecordCartOperation(operation)
	}
}
