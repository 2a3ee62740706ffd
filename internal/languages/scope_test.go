package languages

import (
	"context"
	"errors"
	"testing"
)

type fakeSwitcher struct {
	current  string
	adjust   bool
	switches []string
	fail     error
}

func (f *fakeSwitcher) GetCurrentLanguage(context.Context) string { return f.current }

func (f *fakeSwitcher) SwitchLanguage(_ context.Context, code string) error {
	if f.fail != nil {
		return f.fail
	}
	f.switches = append(f.switches, code)
	f.current = code
	return nil
}

func (f *fakeSwitcher) AdjustIDs(context.Context) bool { return f.adjust }

func (f *fakeSwitcher) SetAdjustIDs(_ context.Context, enabled bool) { f.adjust = enabled }

func TestSwitchLanguageRestoresPrevious(t *testing.T) {
	ctx := context.Background()
	sw := &fakeSwitcher{current: "en"}

	restore, err := SwitchLanguage(ctx, sw, "fr")
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if sw.current != "fr" {
		t.Fatalf("expected fr, got %q", sw.current)
	}
	restore()
	restore()
	if sw.current != "en" {
		t.Fatalf("expected en restored, got %q", sw.current)
	}
	if len(sw.switches) != 2 {
		t.Fatalf("expected exactly two switches, got %v", sw.switches)
	}
}

func TestSwitchLanguageNoOp(t *testing.T) {
	ctx := context.Background()
	sw := &fakeSwitcher{current: "en"}

	for _, code := range []string{"", "  ", "en"} {
		restore, err := SwitchLanguage(ctx, sw, code)
		if err != nil {
			t.Fatalf("switch %q: %v", code, err)
		}
		restore()
	}
	if len(sw.switches) != 0 {
		t.Fatalf("expected no switches, got %v", sw.switches)
	}

	restore, err := SwitchLanguage(ctx, nil, "fr")
	if err != nil || restore == nil {
		t.Fatalf("expected no-op restore for nil switcher, got %v", err)
	}
}

func TestSwitchLanguageFailure(t *testing.T) {
	sentinel := errors.New("boom")
	sw := &fakeSwitcher{current: "en", fail: sentinel}

	restore, err := SwitchLanguage(context.Background(), sw, "fr")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	restore()
	if sw.current != "en" {
		t.Fatalf("expected current language untouched, got %q", sw.current)
	}
}

func TestAdjustIDScopes(t *testing.T) {
	ctx := context.Background()
	sw := &fakeSwitcher{adjust: true}

	restore := SuspendAdjustIDs(ctx, sw)
	if sw.adjust {
		t.Fatalf("expected id rewriting suspended")
	}
	nested := SuspendAdjustIDs(ctx, sw)
	nested()
	if sw.adjust {
		t.Fatalf("nested no-op scope must not re-enable rewriting")
	}
	restore()
	if !sw.adjust {
		t.Fatalf("expected id rewriting restored")
	}

	sw.adjust = false
	restore = EnableAdjustIDs(ctx, sw)
	if !sw.adjust {
		t.Fatalf("expected id rewriting enabled")
	}
	restore()
	if sw.adjust {
		t.Fatalf("expected id rewriting disabled again")
	}
}

func TestChainRestoresInReverseOrder(t *testing.T) {
	var order []int
	restore := Chain(
		func() { order = append(order, 1) },
		nil,
		func() { order = append(order, 2) },
	)
	restore()
	restore()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("unexpected restore order %v", order)
	}
}
