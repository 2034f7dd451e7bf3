package bootstrap

import (
	"context"
	"fmt"

	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/infrastructure/cache"
	"github.com/bnema/dockframe/internal/infrastructure/config"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/layout"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/redis"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockframe/internal/logging"
)

// OpenStore opens the key-value store selected by cfg.Backend. The SQLite
// store connects lazily on first use; Redis is pinged up front.
func OpenStore(ctx context.Context, cfg config.PersistenceConfig) (port.KeyValueStore, error) {
	log := logging.FromContext(ctx)

	switch cfg.Backend {
	case config.BackendSQLite, "":
		log.Debug().Str("path", cfg.SQLitePath).Msg("using sqlite layout store")
		return sqlite.NewKVStore(cfg.SQLitePath), nil
	case config.BackendRedis:
		store, err := redis.NewKVStore(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		log.Debug().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("using redis layout store")
		return store, nil
	case config.BackendMemory:
		log.Debug().Msg("using in-memory layout store")
		return memory.NewKVStore(), nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}
}

// NewLayoutRepository wraps store with the layout codec and, when
// cfg.CacheSize is positive, an LRU read cache.
func NewLayoutRepository(ctx context.Context, store port.KeyValueStore, cfg config.PersistenceConfig) *layout.Repository {
	if cfg.CacheSize <= 0 {
		return layout.NewRepository(store, cfg.KeyPrefix, nil)
	}
	lru := cache.NewLRU[entity.FrameID, entity.LayoutSnapshot](cfg.CacheSize)
	log := logging.FromContext(ctx)
	lru.OnEvict(func(id entity.FrameID, _ entity.LayoutSnapshot) {
		log.Trace().Str("frame_id", string(id)).Int("cache_size", cfg.CacheSize).Msg("layout evicted from cache")
	})
	return layout.NewRepository(store, cfg.KeyPrefix, lru)
}
