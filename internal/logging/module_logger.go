package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-translink/pkg/interfaces"
)

const (
	rootModule         = "translink"
	translationsModule = "translink.translations"
	menusModule        = "translink.menus"
	queryModule        = "translink.query"
	storageModule      = "translink.storage"
	fixturesModule     = "translink.fixtures"
)

const (
	fieldLanguage    = "language"
	fieldContentID   = "content_id"
	fieldContentType = "content_type"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TranslationsLogger returns the logger namespace reserved for translation resolution.
func TranslationsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationsModule)
}

// MenusLogger returns the logger namespace reserved for menu language handling.
func MenusLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, menusModule)
}

// QueryLogger returns the logger namespace reserved for collection query filters.
func QueryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, queryModule)
}

// StorageLogger returns the logger namespace reserved for storage adapters.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// FixturesLogger returns the logger namespace reserved for fixture imports.
func FixturesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fixturesModule)
}

// WithItemContext enriches the logger with the item under resolution and,
// when non-empty, the language being evaluated.
func WithItemContext(logger interfaces.Logger, id string, contentType string, language string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldContentID] = trimmed
	}
	if trimmed := strings.TrimSpace(contentType); trimmed != "" {
		fields[fieldContentType] = trimmed
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
