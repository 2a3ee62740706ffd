package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-translink/internal/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaSource []byte

var (
	ErrFixtureInvalid = errors.New("fixtures: fixture invalid")
	ErrSinkRequired   = errors.New("fixtures: sink required")
)

// Item is a content item plus the translation group it joins. A zero group
// leaves the item untranslated.
type Item struct {
	domain.ContentItem
	Group int64 `json:"group,omitempty"`
}

// Fixture describes a complete site: languages in display order, content
// items with their translation groups and menu location assignments.
type Fixture struct {
	Languages     []domain.LanguageDescriptor `json:"languages"`
	Items         []Item                      `json:"items,omitempty"`
	MenuLocations map[string]domain.ID        `json:"menu_locations,omitempty"`
}

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// ValidationError lists every problem found in a fixture document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrFixtureInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return ErrFixtureInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrFixtureInvalid
}

// Issues extracts validation issues from an error returned by this package.
func Issues(err error) []Issue {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return validationErr.Issues
	}
	return nil
}

// Load decodes and validates a JSON fixture document.
func Load(r io.Reader) (*Fixture, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read: %w", err)
	}

	var document any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("fixtures: decode: %w", err)
	}
	if err := validateDocument(document); err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("fixtures: decode: %w", err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// LoadFile reads a JSON fixture from disk.
func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer file.Close()
	return Load(file)
}

// Validate checks the referential rules the schema cannot express: unique
// language codes, a single default language, unique ids per content type,
// known item languages, resolvable parents and menu location targets.
func (f *Fixture) Validate() error {
	if f == nil {
		return &ValidationError{Issues: []Issue{{Message: "fixture is nil"}}}
	}
	var issues []Issue

	codes := make(map[string]struct{}, len(f.Languages))
	defaults := 0
	for i, lang := range f.Languages {
		if _, dup := codes[lang.Code]; dup {
			issues = append(issues, Issue{Location: fmt.Sprintf("/languages/%d/code", i), Message: "duplicate language " + lang.Code})
		}
		codes[lang.Code] = struct{}{}
		if lang.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		issues = append(issues, Issue{Location: "/languages", Message: "more than one default language"})
	}

	type itemKey struct {
		contentType domain.ContentType
		id          domain.ID
	}
	seen := make(map[itemKey]struct{}, len(f.Items))
	for i, item := range f.Items {
		key := itemKey{contentType: item.Type, id: item.ID}
		if _, dup := seen[key]; dup {
			issues = append(issues, Issue{Location: fmt.Sprintf("/items/%d/id", i), Message: fmt.Sprintf("duplicate %s id %d", item.Type, item.ID)})
		}
		seen[key] = struct{}{}
		if item.Language != "" {
			if _, ok := codes[item.Language]; !ok {
				issues = append(issues, Issue{Location: fmt.Sprintf("/items/%d/language", i), Message: "unknown language " + item.Language})
			}
		}
	}
	for i, item := range f.Items {
		if !item.HasParent() {
			continue
		}
		if _, ok := seen[itemKey{contentType: item.Type, id: *item.ParentID}]; !ok {
			issues = append(issues, Issue{Location: fmt.Sprintf("/items/%d/parent_id", i), Message: fmt.Sprintf("parent %d not found", *item.ParentID)})
		}
	}

	locations := make([]string, 0, len(f.MenuLocations))
	for location := range f.MenuLocations {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	for _, location := range locations {
		if _, ok := seen[itemKey{contentType: domain.ContentTypeMenu, id: f.MenuLocations[location]}]; !ok {
			issues = append(issues, Issue{Location: "/menu_locations/" + location, Message: fmt.Sprintf("menu %d not found", f.MenuLocations[location])})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Sink receives fixture records. Both storage adapters implement it.
type Sink interface {
	PutLanguage(ctx context.Context, lang domain.LanguageDescriptor, position int) error
	PutItem(ctx context.Context, item domain.ContentItem, group int64) error
	PutMenuLocation(ctx context.Context, location string, menuID domain.ID) error
}

// Apply writes the fixture into sink: languages first, then items, then menu
// locations sorted by name.
func Apply(ctx context.Context, fixture *Fixture, sink Sink) error {
	if sink == nil {
		return ErrSinkRequired
	}
	if err := fixture.Validate(); err != nil {
		return err
	}
	for i, lang := range fixture.Languages {
		if err := sink.PutLanguage(ctx, lang, i); err != nil {
			return fmt.Errorf("fixtures: language %s: %w", lang.Code, err)
		}
	}
	for _, item := range fixture.Items {
		if err := sink.PutItem(ctx, item.ContentItem, item.Group); err != nil {
			return fmt.Errorf("fixtures: %s %d: %w", item.Type, item.ID, err)
		}
	}
	locations := make([]string, 0, len(fixture.MenuLocations))
	for location := range fixture.MenuLocations {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	for _, location := range locations {
		if err := sink.PutMenuLocation(ctx, location, fixture.MenuLocations[location]); err != nil {
			return fmt.Errorf("fixtures: location %s: %w", location, err)
		}
	}
	return nil
}

func validateDocument(document any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("fixtures: compile schema: %w", err)
	}
	if err := schema.Validate(document); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &ValidationError{Issues: collectValidationIssues(validationErr)}
		}
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("fixture.json", bytes.NewReader(schemaSource)); err != nil {
		return nil, err
	}
	return compiler.Compile("fixture.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
