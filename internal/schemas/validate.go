// Package schemas validates resume documents at the parse boundary.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_data.schema.json
var resumeDataSchema []byte

// ResumeDataSchemaName names the embedded resume document schema in errors.
const ResumeDataSchemaName = "resume_data.schema.json"

// ResumeDataSchema returns a copy of the embedded JSON Schema of a resume document.
func ResumeDataSchema() []byte {
	out := make([]byte, len(resumeDataSchema))
	copy(out, resumeDataSchema)
	return out
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func (ve *ValidationError) add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}

// errOrNil returns ve when it holds at least one error.
func (ve *ValidationError) errOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

var (
	compiledOnce sync.Once
	compiled     *gojsonschema.Schema
	compileErr   error
)

func resumeSchema() (*gojsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeDataSchema))
		if compileErr != nil {
			compileErr = &SchemaLoadError{
				Path:    ResumeDataSchemaName,
				Message: "schema compilation failed",
				Cause:   compileErr,
			}
		}
	})
	return compiled, compileErr
}

// validateStructure checks a JSON document against the embedded resume schema.
func validateStructure(document []byte) error {
	schema, err := resumeSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}
	return fieldErrors(result).errOrNil()
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return fieldErrors(result).errOrNil()
}

func fieldErrors(result *gojsonschema.Result) *ValidationError {
	validationErr := &ValidationError{}
	if result.Valid() {
		return validationErr
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" || field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
			field = ""
		}
		// Required errors are reported on the parent object; point at the key.
		if desc.Type() == "required" {
			if property, ok := desc.Details()["property"].(string); ok {
				field = join(field, property)
			}
		}
		if field == "" {
			field = "(root)"
		}
		validationErr.add(field, desc.Description())
	}

	return validationErr
}
