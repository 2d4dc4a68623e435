// Package content loads the static portfolio document the site renders from.
// The document is read once at startup; any schema violation is fatal.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ruo.dev/internal/models"
	"ruo.dev/internal/schemas"
)

// Format is the serialization of a content document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks a Format from a file extension, defaulting to JSON
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads and validates the content document at path
func Load(path string) (*models.Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	portfolio, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return portfolio, nil
}

// Parse decodes and validates a content document
func Parse(data []byte, format Format) (*models.Portfolio, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	if err := schemas.ValidatePortfolio(data); err != nil {
		return nil, err
	}

	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if err := Validate(&portfolio); err != nil {
		return nil, err
	}

	for _, entry := range portfolio.Timeline {
		if !entry.Category.Known() {
			slog.Warn("timeline entry has an unknown category and will only be listed under all",
				"id", entry.ID, "category", entry.Category)
		}
	}

	return &portfolio, nil
}

// Validate checks field rules and cross-entry invariants of a decoded
// document and reports all violations at once.
func Validate(p *models.Portfolio) error {
	validationErr := &schemas.ValidationError{}

	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating document: %w", err)
		}
		for _, fe := range fieldErrs {
			validationErr.Add(fieldPath(fe.Namespace()), describe(fe))
		}
	}

	checkUnique(validationErr, "timeline", len(p.Timeline), func(i int) string { return p.Timeline[i].ID })
	checkUnique(validationErr, "projects", len(p.Projects), func(i int) string { return p.Projects[i].ID })

	for _, id := range p.Filters.BootcampIDs {
		if !hasTimelineID(p.Timeline, id) {
			slog.Warn("bootcamp id does not match any timeline entry", "id", id)
		}
	}

	return validationErr.ErrOrNil()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names so errors point at the document, not the Go struct
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A Text is present only when every language resolves to something
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		text, ok := field.Interface().(models.Text)
		if !ok || !text.Complete() {
			return ""
		}
		return text.Resolve(models.DefaultLang)
	}, models.Text{})

	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "url":
		return "must be an absolute URL"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}

// fieldPath trims the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func checkUnique(ve *schemas.ValidationError, collection string, n int, id func(int) string) {
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := id(i)
		if first, dup := seen[key]; dup {
			ve.Add(fmt.Sprintf("%s[%d].id", collection, i),
				fmt.Sprintf("duplicate id %q (first used at %s[%d])", key, collection, first))
			continue
		}
		seen[key] = i
	}
}

func hasTimelineID(entries []models.TimelineEntry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML: %w", err)
	}
	return out, nil
}
