package translink

import "github.com/goliatone/go-translink/internal/runtimeconfig"

var (
	ErrDefaultLanguageRequired  = runtimeconfig.ErrDefaultLanguageRequired
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown    = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheRequiresBunStorage  = runtimeconfig.ErrCacheRequiresBunStorage
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrLinksDefaultGroupMissing = runtimeconfig.ErrLinksDefaultGroupMissing
	ErrDedupPolicyInvalid       = runtimeconfig.ErrDedupPolicyInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LinksConfig   = runtimeconfig.LinksConfig
	MenusConfig   = runtimeconfig.MenusConfig
	QueryConfig   = runtimeconfig.QueryConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
