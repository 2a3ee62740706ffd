package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrDefaultLanguageRequired  = errors.New("translink config: default language is required")
	ErrStorageProviderUnknown   = errors.New("translink config: storage provider is invalid")
	ErrStorageDialectUnknown    = errors.New("translink config: storage dialect is invalid")
	ErrStorageDSNRequired       = errors.New("translink config: storage dsn is required for the bun provider")
	ErrCacheRequiresBunStorage  = errors.New("translink config: cache is only supported by the bun storage provider")
	ErrCacheTTLInvalid          = errors.New("translink config: cache ttl must be zero or positive")
	ErrLinksDefaultGroupMissing = errors.New("translink config: links default group is required when a route config is set")
	ErrDedupPolicyInvalid       = errors.New("translink config: menu location dedup policy is invalid")
	ErrLoggingProviderRequired  = errors.New("translink config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("translink config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("translink config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("translink config: logging format is invalid")
)

const (
	StorageMemory = "memory"
	StorageBun    = "bun"

	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Config aggregates adapter bindings and feature flags for the module.
type Config struct {
	DefaultLanguage string
	Storage         StorageConfig
	Cache           CacheConfig
	Links           LinksConfig
	Menus           MenusConfig
	Query           QueryConfig
	Logging         LoggingConfig
	Features        Features
}

// StorageConfig selects the storage adapter.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
}

// CacheConfig captures repository cache toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LinksConfig configures the go-urlkit backed link filter and home URL
// resolver. A nil RouteConfig keeps links untouched.
type LinksConfig struct {
	RouteConfig    *urlkit.Config
	DefaultGroup   string
	LanguageGroups map[string]string
	HomeRoute      string
	LanguageParam  string
}

// MenusConfig captures menu location behaviour.
type MenusConfig struct {
	// DedupLocations accepts "none" (default) or "preserve_order".
	DedupLocations string
}

// QueryConfig captures collection filtering behaviour.
type QueryConfig struct {
	SwitchAllTaxonomies []string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool
	Commands bool
}

// DefaultConfig returns an in-memory setup with default English content.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: "en",
		Storage: StorageConfig{
			Provider: StorageMemory,
			Dialect:  DialectSQLite,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Links: LinksConfig{
			HomeRoute: "home",
		},
		Menus: MenusConfig{
			DedupLocations: "none",
		},
		Query: QueryConfig{
			SwitchAllTaxonomies: []string{"category", "post_tag"},
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		return ErrDefaultLanguageRequired
	}

	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "", StorageMemory:
		if cfg.Cache.Enabled {
			return ErrCacheRequiresBunStorage
		}
	case StorageBun:
		switch normalize(cfg.Storage.Dialect) {
		case "", DialectSQLite, "sqlite3", DialectPostgres, "pg", "postgresql":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if cfg.Links.RouteConfig != nil && strings.TrimSpace(cfg.Links.DefaultGroup) == "" {
		return ErrLinksDefaultGroupMissing
	}

	switch normalize(cfg.Menus.DedupLocations) {
	case "", "none", "preserve_order", "preserve-order", "unique":
	default:
		return fmt.Errorf("%w: %s", ErrDedupPolicyInvalid, cfg.Menus.DedupLocations)
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
