// Package schemas validates the raw content document against its JSON Schema
// before it is decoded.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed portfolio.schema.json
var portfolioSchema []byte

var compiledPortfolio = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(portfolioSchema))
})

// FieldError is a single violation at a document path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Add appends a violation
func (ve *ValidationError) Add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}

// ErrOrNil returns ve when it holds violations, nil otherwise
func (ve *ValidationError) ErrOrNil() error {
	if ve == nil || len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// ValidatePortfolio checks a JSON content document against the embedded
// schema. It returns a *ValidationError for schema violations and a plain
// error when the document is not JSON at all.
func ValidatePortfolio(doc []byte) error {
	schema, err := compiledPortfolio()
	if err != nil {
		return fmt.Errorf("compiling portfolio schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Add(field, desc.Description())
	}
	return validationErr
}
