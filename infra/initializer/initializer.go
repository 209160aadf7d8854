package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/shoplist/infra"
	infracache "github.com/amirasaad/shoplist/infra/cache"
	infralegacy "github.com/amirasaad/shoplist/infra/legacy"
	infrarepo "github.com/amirasaad/shoplist/infra/repository"
	currencyfixtures "github.com/amirasaad/shoplist/internal/fixtures/currency"
	"github.com/amirasaad/shoplist/pkg/cache"
	"github.com/amirasaad/shoplist/pkg/config"
	"github.com/amirasaad/shoplist/pkg/currency"
	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/amirasaad/shoplist/pkg/settings"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	err error,
) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}

	deps.CurrencyRegistry = loadCurrencies(logger)

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infrarepo.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate canonical schema", "error", err)
		return nil, err
	}

	// Initialize preference cache
	prefCache, closeCache, err := newPreferenceCache(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	deps.PreferenceCache = prefCache
	deps.Preferences = infracache.NewCachedStore(
		infrarepo.NewPreferenceRepository(db),
		prefCache,
		cfg.Redis.TTL,
		logger,
	)
	deps.Close = func() error {
		var errs []error
		if closeCache != nil {
			errs = append(errs, closeCache())
		}
		errs = append(errs, closeDB(db))
		return errors.Join(errs...)
	}

	ctx := context.Background()
	deps.Settings, err = settings.Load(ctx, deps.Preferences)
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	deps.Formats = deps.Settings.Formats(deps.CurrencyRegistry)

	// Initialize unit of work
	deps.Uow = infrarepo.NewUoW(db, deps.Formats)

	deps.Sources = []legacy.Source{
		infralegacy.NewGen1Source(cfg.Legacy.Gen1Database, cfg.Legacy.Gen1Preferences, logger),
		infralegacy.NewGen2Source(cfg.Legacy.Gen2Database, logger),
	}
	return deps, nil
}

// loadCurrencies registers the embedded currency metadata on top of the
// built-in registry.
func loadCurrencies(logger *slog.Logger) *currency.Registry {
	reg := currency.NewRegistry()
	entities, err := currencyfixtures.LoadCurrencyMetaCSV("")
	if err != nil {
		logger.Warn("Failed to load currency meta from CSV", "error", err)
		return reg
	}
	for _, entity := range entities {
		reg.Register(entity)
	}
	logger.Debug("Loaded currency fixtures", "registered_count", reg.Count())
	return reg
}

func newPreferenceCache(cfg *config.Redis, logger *slog.Logger) (cache.PreferenceCache, func() error, error) {
	if cfg.URL == "" {
		logger.Debug("Using in-memory preference cache")
		return infracache.NewMemoryCache(), nil, nil
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	rc := infracache.NewRedisCacheWithOptions(opt, cfg.KeyPrefix, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		logger.Warn("Redis unavailable, falling back to in-memory preference cache", "error", err)
		return infracache.NewMemoryCache(), nil, nil
	}
	logger.Info("Using Redis preference cache", "prefix", cfg.KeyPrefix)
	return rc, rc.Close, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
