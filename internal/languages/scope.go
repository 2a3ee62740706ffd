package languages

import (
	"context"
	"strings"

	"github.com/goliatone/go-translink/pkg/interfaces"
)

// Restore puts a global switch back to the value it held before a scope was
// opened. It is safe to call more than once; only the first call acts.
type Restore func()

func noopRestore() {}

// SwitchLanguage makes code the current language of the translation system
// and returns a Restore that switches back to the previous language. When
// code is empty or already current nothing is switched.
func SwitchLanguage(ctx context.Context, switcher interfaces.LanguageSwitcher, code string) (Restore, error) {
	code = strings.TrimSpace(code)
	if switcher == nil || code == "" {
		return noopRestore, nil
	}

	previous := switcher.GetCurrentLanguage(ctx)
	if previous == code {
		return noopRestore, nil
	}
	if err := switcher.SwitchLanguage(ctx, code); err != nil {
		return noopRestore, err
	}

	return once(func() {
		_ = switcher.SwitchLanguage(ctx, previous)
	}), nil
}

// SuspendAdjustIDs turns off id rewriting for the lifetime of the scope.
func SuspendAdjustIDs(ctx context.Context, switcher interfaces.LanguageSwitcher) Restore {
	return setAdjustIDs(ctx, switcher, false)
}

// EnableAdjustIDs turns on id rewriting for the lifetime of the scope.
func EnableAdjustIDs(ctx context.Context, switcher interfaces.LanguageSwitcher) Restore {
	return setAdjustIDs(ctx, switcher, true)
}

func setAdjustIDs(ctx context.Context, switcher interfaces.LanguageSwitcher, enabled bool) Restore {
	if switcher == nil {
		return noopRestore
	}
	previous := switcher.AdjustIDs(ctx)
	if previous == enabled {
		return noopRestore
	}
	switcher.SetAdjustIDs(ctx, enabled)
	return once(func() {
		switcher.SetAdjustIDs(ctx, previous)
	})
}

// Chain combines restores so they run in reverse order of acquisition.
func Chain(restores ...Restore) Restore {
	return once(func() {
		for i := len(restores) - 1; i >= 0; i-- {
			if restores[i] != nil {
				restores[i]()
			}
		}
	})
}

func once(fn func()) Restore {
	done := false
	return func() {
		if done {
			return
		}
		done = true
		fn()
	}
}
