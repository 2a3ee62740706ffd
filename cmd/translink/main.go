package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-translink"
	"github.com/goliatone/go-translink/domain"
)

var errUsage = errors.New("usage: translink [flags] <translations|url|languages|locations> [command flags]")

var moduleBuilder = buildModule

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("translink: %v", err)
	}
}

type globalOptions struct {
	fixture     string
	markdownDir string
	storage     string
	dialect     string
	dsn         string
	dedup       string
	logLevel    string
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("translink", flag.ContinueOnError)
	opts := globalOptions{}
	fs.StringVar(&opts.fixture, "fixture", "", "Path to the JSON site fixture")
	fs.StringVar(&opts.markdownDir, "markdown", "", "Directory of per-language markdown items merged into the fixture")
	fs.StringVar(&opts.storage, "storage", "memory", "Storage provider (memory or bun)")
	fs.StringVar(&opts.dialect, "dialect", "sqlite", "SQL dialect for bun storage (sqlite or postgres)")
	fs.StringVar(&opts.dsn, "dsn", "file::memory:?cache=shared", "DSN for bun storage")
	fs.StringVar(&opts.dedup, "dedup", "none", "Menu location dedup policy (none or preserve_order)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Enable go-logger output at the given level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	if strings.TrimSpace(opts.fixture) == "" {
		return errors.New("-fixture is required")
	}

	module, err := moduleBuilder(ctx, opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	switch rest[0] {
	case "translations":
		return runTranslations(ctx, module, rest[1:], stdout)
	case "url":
		return runURL(ctx, module, rest[1:], stdout)
	case "languages":
		return runLanguages(ctx, module, rest[1:], stdout)
	case "locations":
		return runLocations(ctx, module, rest[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q: %w", rest[0], errUsage)
	}
}

func buildModule(ctx context.Context, opts globalOptions) (*translink.Module, error) {
	cfg := translink.DefaultConfig()
	cfg.Features.Commands = true
	cfg.Menus.DedupLocations = opts.dedup
	cfg.Storage.Provider = opts.storage
	cfg.Storage.Dialect = opts.dialect
	cfg.Storage.DSN = opts.dsn
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}

	module, err := translink.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := module.EnsureSchema(ctx); err != nil {
		_ = module.Close()
		return nil, err
	}
	if err := module.ImportFixture(ctx, opts.fixture, opts.markdownDir); err != nil {
		_ = module.Close()
		return nil, err
	}
	return module, nil
}

func parseItemFlags(name string, args []string, extra func(*flag.FlagSet)) (domain.ContentType, domain.ID, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	rawType := fs.String("type", "post", "Content type (post, term, menu, menu_item)")
	rawID := fs.String("id", "", "Content id")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return "", 0, err
	}
	contentType, ok := domain.ParseContentType(*rawType)
	if !ok {
		return "", 0, fmt.Errorf("unknown content type %q", *rawType)
	}
	id, err := domain.ParseID(*rawID)
	if err != nil {
		return "", 0, fmt.Errorf("parse -id: %w", err)
	}
	return contentType, id, nil
}

func runTranslations(ctx context.Context, module *translink.Module, args []string, stdout io.Writer) error {
	contentType, id, err := parseItemFlags("translations", args, nil)
	if err != nil {
		return err
	}
	item, err := module.ContentStore().GetByID(ctx, id, contentType)
	if err != nil {
		return err
	}
	if contentType.IsTermLike() {
		terms, err := module.Translations().ListTermTranslations(ctx, *item)
		if err != nil {
			return err
		}
		return writeJSON(stdout, terms)
	}
	links, err := module.Translations().ListTranslations(ctx, *item)
	if err != nil {
		return err
	}
	return writeJSON(stdout, links)
}

func runURL(ctx context.Context, module *translink.Module, args []string, stdout io.Writer) error {
	var code string
	contentType, id, err := parseItemFlags("url", args, func(fs *flag.FlagSet) {
		fs.StringVar(&code, "lang", "", "Language code; defaults to the item's own language")
	})
	if err != nil {
		return err
	}
	item, err := module.ContentStore().GetByID(ctx, id, contentType)
	if err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		url, err := module.Translations().LocalizedURL(ctx, *item)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, url)
		return err
	}
	language, err := module.Languages().Find(ctx, code)
	if err != nil {
		return err
	}
	if language == nil {
		return fmt.Errorf("language %q is not active", code)
	}
	url, err := module.Translations().ResolveCanonicalURL(ctx, *item, *language)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, url)
	return err
}

func runLanguages(ctx context.Context, module *translink.Module, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	hidden := fs.Bool("hidden", false, "Annotate hidden languages")
	locales := fs.Bool("locales", false, "Print locales only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *locales {
		values, err := module.Languages().Locales(ctx)
		if err != nil {
			return err
		}
		return writeJSON(stdout, values)
	}
	langs, err := module.Languages().Languages(ctx, *hidden)
	if err != nil {
		return err
	}
	return writeJSON(stdout, langs)
}

func runLocations(ctx context.Context, module *translink.Module, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("locations", flag.ContinueOnError)
	rawIDs := fs.String("ids", "", "Comma separated menu ids")
	code := fs.String("lang", "", "Restrict expansion to one language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids := []domain.ID{}
	for _, raw := range strings.Split(*rawIDs, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := domain.ParseID(raw)
		if err != nil {
			return fmt.Errorf("parse -ids: %w", err)
		}
		ids = append(ids, id)
	}
	var language *string
	if trimmed := strings.TrimSpace(*code); trimmed != "" {
		language = &trimmed
	}

	resolved, err := module.Menus().ResolveLocationsForLanguage(ctx, ids, language)
	if err != nil {
		return err
	}
	return writeJSON(stdout, resolved)
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
