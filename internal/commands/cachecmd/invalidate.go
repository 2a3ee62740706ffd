package cachecmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-translink/internal/commands"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/pkg/interfaces"
)

const invalidateCacheMessageType = "translink.cache.invalidate"

var (
	ErrCacheDisabled       = errors.New("cache command: cache disabled")
	ErrInvalidatorRequired = errors.New("cache command: invalidator required")
)

// Invalidator drops cached storage reads.
type Invalidator interface {
	InvalidateCache(ctx context.Context) error
}

// FeatureGates exposes the runtime toggle required by the cache handler.
type FeatureGates struct {
	CacheEnabled func() bool
}

func (g FeatureGates) cacheEnabled() bool {
	if g.CacheEnabled == nil {
		return true
	}
	return g.CacheEnabled()
}

// InvalidateCacheCommand clears cached content, translation and language lookups.
type InvalidateCacheCommand struct {
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (InvalidateCacheCommand) Type() string { return invalidateCacheMessageType }

// Validate satisfies command.Message.
func (c InvalidateCacheCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Reason, validation.Length(0, 200)),
	)
}

// InvalidateCacheHandler orchestrates cache invalidation.
type InvalidateCacheHandler struct {
	inner *commands.Handler[InvalidateCacheCommand]
}

// NewInvalidateCacheHandler constructs a handler wired to the storage invalidator.
func NewInvalidateCacheHandler(invalidator Invalidator, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InvalidateCacheCommand]) *InvalidateCacheHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg InvalidateCacheCommand) error {
		if !gates.cacheEnabled() {
			return ErrCacheDisabled
		}
		if invalidator == nil {
			return ErrInvalidatorRequired
		}
		if err := invalidator.InvalidateCache(ctx); err != nil {
			return err
		}
		fields := map[string]any{"operation": "invalidate"}
		if msg.Reason != "" {
			fields["reason"] = msg.Reason
		}
		logging.WithFields(baseLogger, fields).Info("cache.command.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateCacheCommand]{
		commands.WithLogger[InvalidateCacheCommand](baseLogger),
		commands.WithOperation[InvalidateCacheCommand]("cache.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateCacheHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateCacheCommand].
func (h *InvalidateCacheHandler) Execute(ctx context.Context, msg InvalidateCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
