package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daralkutub/storefront/internal/domain"
)

const (
	// defaultSnapshotTTL keeps abandoned carts around for a month before
	// Redis reclaims them.
	defaultSnapshotTTL = 30 * 24 * time.Hour
	operationTimeout   = 5 * time.Second
)

// CartSnapshotStore persists cart snapshots as JSON values in Redis, one key
// per browsing session.
type CartSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// StoreOption customizes the snapshot store.
type StoreOption func(*CartSnapshotStore)

// WithSnapshotTTL overrides the snapshot expiry.
func WithSnapshotTTL(ttl time.Duration) StoreOption {
	return func(s *CartSnapshotStore) {
		s.ttl = ttl
	}
}

// NewCartSnapshotStore creates a Redis-backed snapshot store.
func NewCartSnapshotStore(client *redis.Client, opts ...StoreOption) *CartSnapshotStore {
	s := &CartSnapshotStore{
		client: client,
		ttl:    defaultSnapshotTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted lines for a session, (nil, nil) when no
// snapshot exists.
func (s *CartSnapshotStore) Load(sessionID string) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot failed: %w", err)
	}
	return lines, nil
}

// Save overwrites the session snapshot and refreshes its expiry.
func (s *CartSnapshotStore) Save(sessionID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	if err := s.client.Set(ctx, snapshotKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete drops the session snapshot.
func (s *CartSnapshotStore) Delete(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	if err := s.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

var _ domain.CartSnapshotStore = (*CartSnapshotStore)(nil)
