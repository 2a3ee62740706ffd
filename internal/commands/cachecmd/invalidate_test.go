package cachecmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-translink/internal/logging"
)

type trackingInvalidator struct {
	calls int
	err   error
}

func (t *trackingInvalidator) InvalidateCache(context.Context) error {
	t.calls++
	return t.err
}

func TestInvalidateCacheHandler(t *testing.T) {
	tracking := &trackingInvalidator{}
	handler := NewInvalidateCacheHandler(tracking, logging.NoOp(), FeatureGates{
		CacheEnabled: func() bool { return true },
	})

	if err := handler.Execute(context.Background(), InvalidateCacheCommand{Reason: "fixture import"}); err != nil {
		t.Fatalf("execute invalidate: %v", err)
	}
	if tracking.calls != 1 {
		t.Fatalf("expected invalidate calls 1, got %d", tracking.calls)
	}
}

func TestInvalidateCacheHandlerFeatureDisabled(t *testing.T) {
	tracking := &trackingInvalidator{}
	handler := NewInvalidateCacheHandler(tracking, nil, FeatureGates{
		CacheEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), InvalidateCacheCommand{})
	if !errors.Is(err, ErrCacheDisabled) {
		t.Fatalf("expected ErrCacheDisabled, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if tracking.calls != 0 {
		t.Fatalf("expected no invalidation calls, got %d", tracking.calls)
	}
}

func TestInvalidateCacheHandlerPropagatesStorageError(t *testing.T) {
	storageErr := errors.New("cache offline")
	handler := NewInvalidateCacheHandler(&trackingInvalidator{err: storageErr}, nil, FeatureGates{})

	err := handler.Execute(context.Background(), InvalidateCacheCommand{})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestInvalidateCacheCommandValidation(t *testing.T) {
	handler := NewInvalidateCacheHandler(&trackingInvalidator{}, nil, FeatureGates{})
	err := handler.Execute(context.Background(), InvalidateCacheCommand{Reason: strings.Repeat("x", 201)})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
