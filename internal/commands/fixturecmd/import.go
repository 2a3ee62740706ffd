package fixturecmd

import (
	"context"
	"errors"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translink/internal/commands"
	"github.com/goliatone/go-translink/internal/fixtures"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

const importFixtureMessageType = "translink.fixtures.import"

var (
	ErrImportDisabled = errors.New("fixture command: import disabled")
	ErrSinkRequired   = errors.New("fixture command: sink required")
)

// Invalidator is notified after a successful import so cached reads refresh.
type Invalidator interface {
	InvalidateCache(ctx context.Context) error
}

// FeatureGates exposes the runtime toggle required by the import handler.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}

// ImportFixtureCommand loads a JSON fixture and, optionally, a directory of
// markdown items laid out per language, then writes both into storage.
type ImportFixtureCommand struct {
	Path        string `json:"path"`
	MarkdownDir string `json:"markdown_dir,omitempty"`
	DryRun      bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportFixtureCommand) Type() string { return importFixtureMessageType }

// Validate satisfies command.Message.
func (c ImportFixtureCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.Required, validation.By(jsonPath)),
	)
}

func jsonPath(value any) error {
	path, _ := value.(string)
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(path)), ".json") {
		return errors.New("must reference a .json fixture")
	}
	return nil
}

// ImportFixtureHandler applies fixtures into a storage sink.
type ImportFixtureHandler struct {
	inner *commands.Handler[ImportFixtureCommand]
}

// HandlerConfig groups the collaborators of the import handler.
type HandlerConfig struct {
	Sink        fixtures.Sink
	Invalidator Invalidator
	Logger      interfaces.Logger
	Gates       FeatureGates
}

// NewImportFixtureHandler constructs the import handler.
func NewImportFixtureHandler(cfg HandlerConfig, opts ...commands.HandlerOption[ImportFixtureCommand]) *ImportFixtureHandler {
	baseLogger := commands.EnsureLogger(cfg.Logger)

	exec := func(ctx context.Context, msg ImportFixtureCommand) error {
		if !cfg.Gates.commandsEnabled() {
			return ErrImportDisabled
		}
		if cfg.Sink == nil {
			return ErrSinkRequired
		}

		fixture, err := fixtures.LoadFile(msg.Path)
		if err != nil {
			return err
		}
		if dir := strings.TrimSpace(msg.MarkdownDir); dir != "" {
			items, err := fixtures.LoadMarkdown(os.DirFS(dir), ".")
			if err != nil {
				return err
			}
			fixture.Items = append(fixture.Items, items...)
		}

		logger := logging.WithFields(baseLogger, map[string]any{
			"path":      msg.Path,
			"languages": len(fixture.Languages),
			"items":     len(fixture.Items),
			"locations": len(fixture.MenuLocations),
		})
		if msg.DryRun {
			if err := fixture.Validate(); err != nil {
				return err
			}
			logger.Info("fixtures.command.import.dry_run")
			return nil
		}

		if err := fixtures.Apply(ctx, fixture, cfg.Sink); err != nil {
			return err
		}
		if cfg.Invalidator != nil {
			if err := cfg.Invalidator.InvalidateCache(ctx); err != nil {
				return err
			}
		}
		logger.Info("fixtures.command.imported")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportFixtureCommand]{
		commands.WithLogger[ImportFixtureCommand](baseLogger),
		commands.WithOperation[ImportFixtureCommand]("fixtures.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportFixtureHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportFixtureCommand].
func (h *ImportFixtureHandler) Execute(ctx context.Context, msg ImportFixtureCommand) error {
	return h.inner.Execute(ctx, msg)
}
