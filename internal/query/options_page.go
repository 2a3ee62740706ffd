package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-translink/internal/languages"
)

// LanguageSink is a component that keeps its own copy of the current
// language, such as a custom fields plugin.
type LanguageSink interface {
	SetLanguage(ctx context.Context, code string)
}

// OptionsPage switches to language for an options page read and pushes the
// code to every sink. The Restore puts the previous language back in the
// index and the sinks. An empty code is a no-op.
func (f *Filter) OptionsPage(ctx context.Context, language string, sinks ...LanguageSink) languages.Restore {
	code := strings.TrimSpace(language)
	if code == "" {
		return languages.Chain()
	}

	previous := f.index.GetCurrentLanguage(ctx)
	restore, ok := f.switchTo(ctx, code)
	if !ok {
		return languages.Chain()
	}
	for _, sink := range sinks {
		if sink != nil {
			sink.SetLanguage(ctx, code)
		}
	}

	return languages.Chain(restore, func() {
		for _, sink := range sinks {
			if sink != nil {
				sink.SetLanguage(ctx, previous)
			}
		}
	})
}
