package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-translink/domain"
)

const fixture = "../../internal/fixtures/testdata/site.json"

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), append([]string{"-fixture", fixture}, args...), &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func TestRunTranslations(t *testing.T) {
	out := runCLI(t, "translations", "-id", "1")
	var links []domain.TranslationLink
	if err := json.Unmarshal([]byte(out), &links); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(links) != 1 || links[0].ContentID != 42 || links[0].Href != "https://example.com/fr/a-propos/" {
		t.Fatalf("unexpected links: %+v", links)
	}
}

func TestRunTermTranslations(t *testing.T) {
	out := runCLI(t, "translations", "-type", "term", "-id", "5")
	var terms []domain.TermTranslation
	if err := json.Unmarshal([]byte(out), &terms); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(terms) != 1 || terms[0].DatabaseID != 6 || terms[0].Locale != "fr_FR" {
		t.Fatalf("unexpected terms: %+v", terms)
	}
}

func TestRunURL(t *testing.T) {
	out := runCLI(t, "url", "-id", "11", "-lang", "de")
	if strings.TrimSpace(out) != "https://example.com/de/docs/intro/" {
		t.Fatalf("unexpected url %q", out)
	}
}

func TestRunLanguagesLocales(t *testing.T) {
	out := runCLI(t, "languages", "-locales")
	var locales []string
	if err := json.Unmarshal([]byte(out), &locales); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if strings.Join(locales, ",") != "en_US,fr_FR,de_DE" {
		t.Fatalf("unexpected locales %v", locales)
	}
}

func TestRunLocations(t *testing.T) {
	out := runCLI(t, "locations", "-ids", "7")
	var ids []domain.ID
	if err := json.Unmarshal([]byte(out), &ids); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(ids) != 3 || ids[0] != 7 || ids[1] != 15 || ids[2] != 22 {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestRunUsageErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-fixture", fixture}, &out); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(context.Background(), []string{"-fixture", fixture, "explode"}, &out); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
	if err := run(context.Background(), []string{"languages"}, &out); err == nil {
		t.Fatal("expected missing fixture error")
	}
}
