// Package remote implements the hosted Postgres backend. Every row carries the
// owning user's ID and all reads and deletes are scoped to it.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const batchSize = 50

// Store is a service.Backend over a Postgres database.
type Store struct {
	db     *gorm.DB
	userID string
}

// Open connects to the remote database described by cfg.
func Open(ctx context.Context, cfg config.RemoteConfig) (*Store, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("%w: remote.url and remote.key", common.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn, err := BuildDSN(cfg.URL, cfg.Key)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}

	s := &Store{db: db, userID: cfg.UserID}
	if cfg.AutoMigrate {
		s.migrate(ctx)
	}
	return s, nil
}

// migrate creates missing tables. Each table is migrated on its own so a
// permission failure on one does not block the rest.
func (s *Store) migrate(ctx context.Context) {
	for _, m := range tables() {
		if err := s.db.WithContext(ctx).AutoMigrate(m); err != nil {
			slog.Warn("Remote migration failed",
				"table", tableName(m),
				"error", err)
		}
	}
}

// BuildDSN derives a Postgres connection string from the configured endpoint
// and key. A postgres:// endpoint receives the key as its password when it
// has none; a hosted project URL (https://<ref>.supabase.co) is mapped to
// its database host.
func BuildDSN(endpoint, key string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", fmt.Errorf("%w: remote.url: %w", common.ErrInvalidConfig, err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
	case "https":
		ref, _, ok := strings.Cut(u.Hostname(), ".")
		if !ok || ref == "" {
			return "", fmt.Errorf("%w: remote.url host %q", common.ErrInvalidConfig, u.Host)
		}
		u = &url.URL{
			Scheme: "postgres",
			User:   url.User("postgres"),
			Host:   "db." + u.Hostname() + ":5432",
			Path:   "/postgres",
		}
	default:
		return "", fmt.Errorf("%w: unsupported remote.url scheme %q", common.ErrInvalidConfig, u.Scheme)
	}

	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	if _, hasPassword := u.User.Password(); !hasPassword && key != "" {
		u.User = url.UserPassword(user, key)
	}

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Name identifies the backend in logs.
func (s *Store) Name() string {
	return "remote"
}

// Close closes the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
