package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/exodo/internal/config"
	"github.com/Veraticus/exodo/internal/remote"
	"github.com/Veraticus/exodo/internal/service"
)

// DialFunc opens a remote backend.
type DialFunc func(ctx context.Context, cfg config.RemoteConfig) (service.Backend, error)

// Options selects and configures the backends.
type Options struct {
	Dial   DialFunc
	Path   string
	Remote config.RemoteConfig
}

// Selection is the outcome of Open. Backend is what callers should use;
// Local and Remote expose the individual backends for synchronization.
type Selection struct {
	Backend service.Backend
	Remote  service.Backend
	Local   *SQLiteStorage
}

// Open opens the local store and, when the remote backend is configured and
// reachable, layers it in front of the local one.
func Open(ctx context.Context, opts Options) (*Selection, error) {
	local, err := NewSQLiteStorage(opts.Path)
	if err != nil {
		return nil, err
	}
	if err := local.Migrate(ctx); err != nil {
		_ = local.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	sel := &Selection{Backend: local, Local: local}

	if !opts.Remote.Configured() {
		slog.Debug("remote backend not configured, using local storage only")
		return sel, nil
	}

	dial := opts.Dial
	if dial == nil {
		dial = func(ctx context.Context, cfg config.RemoteConfig) (service.Backend, error) {
			return remote.Open(ctx, cfg)
		}
	}

	rb, err := dial(ctx, opts.Remote)
	if err != nil {
		slog.Warn("Remote backend unavailable, using local storage",
			"error", err)
		return sel, nil
	}

	sel.Remote = rb
	sel.Backend = NewFallback(rb, local)
	return sel, nil
}

// Close closes every backend that was opened.
func (s *Selection) Close() error {
	return s.Backend.Close()
}
