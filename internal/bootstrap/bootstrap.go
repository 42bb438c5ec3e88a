// Package bootstrap turns a config.Config into the concrete adapters the
// binaries run on: the settlement source, the gazetteer built from it, and
// the optional nearest cache.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gazetteer-service/internal/adapters/cache"
	"gazetteer-service/internal/adapters/repositories"
	"gazetteer-service/internal/adapters/sources"
	"gazetteer-service/internal/config"
	"gazetteer-service/internal/gazetteer"
	"gazetteer-service/internal/platform/db"
	"gazetteer-service/internal/ports"
	"gazetteer-service/internal/services"
)

// Database-backed source kinds, in addition to the file kinds of sources.Open.
const (
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

func noop() error { return nil }

// OpenSource resolves cfg.SourceKind to a settlement source.
// The returned close func releases any database handle and is never nil.
func OpenSource(cfg config.Config) (ports.SettlementSource, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SourceKind)) {
	case KindSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open source: %w", err)
		}
		return repositories.NewSqliteSettlementRepository(conn), conn.Close, nil
	case KindPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, noop, fmt.Errorf("open source: DATABASE_URL is required for kind %q", KindPostgres)
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open source: %w", err)
		}
		return repositories.NewSQLSettlementRepository(conn), conn.Close, nil
	default:
		src, err := sources.Open(cfg.SourceKind, cfg.SourcePath)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	}
}

// LoadGazetteer opens the configured source, builds a gazetteer and releases the source.
func LoadGazetteer(ctx context.Context, cfg config.Config) (*gazetteer.Gazetteer, error) {
	src, closeSrc, err := OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeSrc() }()

	return services.LoadGazetteer(ctx, src)
}

// OpenCache connects the Redis nearest cache when cfg.RedisAddr is set.
// Without an address it returns a nil cache and a no-op close func.
func OpenCache(ctx context.Context, cfg config.Config) (ports.NearestCache, func() error, error) {
	client, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, noop, err
	}
	if client == nil {
		return nil, noop, nil
	}
	return cache.NewRedisNearestCache(client, cfg.CacheTTL), client.Close, nil
}

// OpenDatabase opens the database named by driver: sqlite uses cfg.DBPath, postgres cfg.DatabaseURL.
// An empty driver means postgres when DATABASE_URL is set and sqlite otherwise.
func OpenDatabase(driver string, cfg config.Config) (*sql.DB, string, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = KindSQLite
		if strings.TrimSpace(cfg.DatabaseURL) != "" {
			driver = KindPostgres
		}
	}

	switch driver {
	case KindSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		return conn, driver, err
	case KindPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, driver, fmt.Errorf("open database: DATABASE_URL is required for %q", KindPostgres)
		}
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, driver, err
	default:
		return nil, driver, fmt.Errorf("open database: unknown driver %q (want sqlite or postgres)", driver)
	}
}
