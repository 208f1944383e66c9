package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/exodo/internal/common"
	"github.com/spf13/viper"
)

// RemoteConfig describes the hosted Postgres backend. Its absence is not an
// error: an unconfigured remote simply keeps everything local.
type RemoteConfig struct {
	URL         string
	Key         string
	UserID      string
	AutoMigrate bool
}

// Configured reports whether both public connection strings are present.
func (c RemoteConfig) Configured() bool {
	return c.URL != "" && c.Key != "" && !strings.Contains(c.URL, "placeholder")
}

// Validate checks that a configured remote can scope rows to a user.
func (c RemoteConfig) Validate() error {
	if !c.Configured() {
		return nil
	}
	if c.UserID == "" {
		return fmt.Errorf("%w: remote.user_id is required when the remote backend is configured", common.ErrMissingConfig)
	}
	return nil
}

// LoadRemoteConfig loads the remote backend configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or EXODO_ env vars)
// 2. Direct environment variables (SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_USER_ID)
func LoadRemoteConfig() (RemoteConfig, error) {
	cfg := RemoteConfig{
		URL:         strings.TrimSpace(viper.GetString("remote.url")),
		Key:         strings.TrimSpace(viper.GetString("remote.key")),
		UserID:      strings.TrimSpace(viper.GetString("remote.user_id")),
		AutoMigrate: viper.GetBool("remote.auto_migrate"),
	}

	if cfg.URL == "" {
		cfg.URL = strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	}
	if cfg.Key == "" {
		cfg.Key = strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY"))
	}
	if cfg.UserID == "" {
		cfg.UserID = strings.TrimSpace(os.Getenv("SUPABASE_USER_ID"))
	}

	if err := cfg.Validate(); err != nil {
		return RemoteConfig{}, err
	}
	return cfg, nil
}

// DatabasePath returns the local database location with ~ and variables expanded.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = "$HOME/.local/share/exodo/exodo.db"
	}
	return ExpandPath(path)
}
