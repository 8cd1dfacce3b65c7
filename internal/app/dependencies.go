package app

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/storage/memory"
	"github.com/daralkutub/storefront/internal/storage/postgres"
	redisstore "github.com/daralkutub/storefront/internal/storage/redis"
)

// Dependencies holds the storage backends the services run on. Postgres and
// redis are optional: without them everything falls back to the in-memory
// implementations, which is enough for development and tests.
type Dependencies struct {
	Orders    domain.OrderRepository
	Catalog   domain.CatalogRepository
	Outbox    domain.OutboxRepository
	Snapshots domain.CartSnapshotStore

	// Store is non-nil only when postgres is configured.
	Store *postgres.Store
	// Redis is non-nil only when redis is configured and reachable.
	Redis *goredis.Client

	Logger *log.Entry
}

// NewDependencies initializes storage per the config. A configured postgres
// that cannot be reached is a startup error; a configured redis that cannot
// be reached is logged and replaced with the in-memory snapshot store, since
// losing cart durability is survivable and losing orders is not.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.New().WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.Store = store
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Catalog = postgres.NewCatalogRepository(store)
		deps.Outbox = postgres.NewOutboxRepository(store)
		logger.Info("postgres storage initialized")
	} else {
		deps.Orders = memory.NewOrderRepository()
		deps.Catalog = memory.NewCatalogRepository()
		deps.Outbox = memory.NewOutboxRepository()
		logger.Info("running on in-memory storage")
	}

	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Warn("redis unreachable, cart snapshots stay in memory")
			_ = client.Close()
			deps.Snapshots = memory.NewCartSnapshotStore()
		} else {
			deps.Redis = client
			deps.Snapshots = redisstore.NewCartSnapshotStore(client)
			logger.WithField("addr", cfg.RedisAddr).Info("redis cart snapshots initialized")
		}
	} else {
		deps.Snapshots = memory.NewCartSnapshotStore()
	}

	return deps, nil
}

// Close releases the external connections, if any.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
