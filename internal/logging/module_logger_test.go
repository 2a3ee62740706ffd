package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-translink/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "translink.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, menusModule)

	if len(provider.requested) != 1 || provider.requested[0] != menusModule {
		t.Fatalf("expected module %s, got %v", menusModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != menusModule {
		t.Fatalf("expected module field %s, got %v", menusModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		translationsModule: TranslationsLogger,
		menusModule:        MenusLogger,
		queryModule:        QueryLogger,
		storageModule:      StorageLogger,
		fixturesModule:     FixturesLogger,
	}
	for module, build := range cases {
		t.Run(module, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != module {
				t.Fatalf("expected %s request, got %v", module, provider.requested)
			}
		})
	}
}

func TestWithItemContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithItemContext(rec, "42", "post", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldContentID] != "42" || fields[fieldContentType] != "post" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[fieldLanguage]; ok {
		t.Fatalf("expected empty language to be skipped, got %v", fields)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"language": "fr"})

	fields := ContextFields(ctx)
	if fields["request"] != "a" || fields["language"] != "fr" {
		t.Fatalf("expected merged fields, got %v", fields)
	}
}
