package languages

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	"github.com/goliatone/go-translink/internal/logging"
	"github.com/goliatone/go-translink/pkg/interfaces"
	"golang.org/x/text/language"
)

var (
	ErrIndexRequired   = errors.New("languages: translation index is required")
	ErrLanguageUnknown = errors.New("languages: language is not active")
)

// Service lists the active languages of the translation system.
type Service interface {
	// Languages returns the active languages in index order. When
	// annotateHidden is set IsHidden reflects the hidden language set.
	Languages(ctx context.Context, annotateHidden bool) ([]domain.LanguageDescriptor, error)
	// Locales returns the locale of each active language.
	Locales(ctx context.Context) ([]string, error)
	// Find returns the active language with the given code.
	Find(ctx context.Context, code string) (*domain.LanguageDescriptor, error)
}

// ServiceOption configures the language service.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	index  interfaces.TranslationIndex
	logger interfaces.Logger
}

// NewService constructs a language listing service backed by index.
func NewService(index interfaces.TranslationIndex, opts ...ServiceOption) Service {
	s := &service{
		index:  index,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Languages(ctx context.Context, annotateHidden bool) ([]domain.LanguageDescriptor, error) {
	if s.index == nil {
		return nil, ErrIndexRequired
	}
	active, err := s.index.GetActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}

	var hidden map[string]struct{}
	if annotateHidden {
		hidden, err = s.index.GetHiddenLanguages(ctx)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.LanguageDescriptor, 0, len(active))
	for _, lang := range active {
		lang.Locale = NormalizeLocale(lang.Locale)
		if annotateHidden {
			_, lang.IsHidden = hidden[lang.Code]
		}
		out = append(out, lang)
	}
	return out, nil
}

func (s *service) Locales(ctx context.Context) ([]string, error) {
	active, err := s.Languages(ctx, false)
	if err != nil {
		return nil, err
	}
	locales := make([]string, 0, len(active))
	for _, lang := range active {
		locales = append(locales, lang.Locale)
	}
	return locales, nil
}

func (s *service) Find(ctx context.Context, code string) (*domain.LanguageDescriptor, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrLanguageUnknown
	}
	active, err := s.Languages(ctx, false)
	if err != nil {
		return nil, err
	}
	if found := FindByCode(active, code); found != nil {
		return found, nil
	}
	s.logger.WithContext(ctx).Debug("languages.find.miss", "language", code)
	return nil, ErrLanguageUnknown
}

// FindByCode returns a copy of the descriptor with the given code.
func FindByCode(languages []domain.LanguageDescriptor, code string) *domain.LanguageDescriptor {
	for _, lang := range languages {
		if lang.Code == code {
			found := lang
			return &found
		}
	}
	return nil
}

// NormalizeLocale canonicalises locale spellings. Host systems store locales
// as en_US; the underscore form is preserved, only casing is fixed.
// Unparseable values are returned trimmed but otherwise untouched.
func NormalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	underscored := strings.Contains(trimmed, "_")
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return trimmed
	}
	canonical := tag.String()
	if underscored {
		canonical = strings.ReplaceAll(canonical, "-", "_")
	}
	return canonical
}
