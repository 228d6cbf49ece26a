package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseResumeData decodes and validates a resume document. Soft fields are
// coerced to their fallbacks first; any remaining problems are returned
// together as a *ValidationError.
func ParseResumeData(data []byte) (*types.ResumeData, error) {
	doc, _, err := parse(data)
	return doc, err
}

// ParseResumeDataWithCoercions is ParseResumeData that also reports which
// fields were replaced by fallbacks.
func ParseResumeDataWithCoercions(data []byte) (*types.ResumeData, []Coercion, error) {
	return parse(data)
}

func parse(data []byte) (*types.ResumeData, []Coercion, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("invalid JSON: %v", err)}}}
	}
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document must be an object"}}}
	}

	coercions := coerce(root)
	for _, c := range coercions {
		slog.Debug("coerced resume field", "field", c.Field, "value", c.Value)
	}

	normalized, err := json.Marshal(root)
	if err != nil {
		return nil, coercions, fmt.Errorf("failed to re-encode document: %w", err)
	}
	if err := validateStructure(normalized); err != nil {
		return nil, coercions, err
	}

	var doc types.ResumeData
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, coercions, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	if err := ValidateResumeData(&doc); err != nil {
		return nil, coercions, err
	}
	return &doc, coercions, nil
}

// ValidateResumeData checks the value constraints of a typed document: ranges,
// required text, enumerations and that every item matches the type of the
// section that holds it. Layout consistency is not checked here.
func ValidateResumeData(doc *types.ResumeData) error {
	if doc == nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is required"}}}
	}
	ve := &ValidationError{}

	collect(ve, "", validate.Struct(doc))

	for _, t := range types.StandardSections {
		sec := doc.Sections.Get(t)
		validateItems(ve, fmt.Sprintf("sections.%s.items", t), t.ItemType(), sec.Items)
	}
	for i, cs := range doc.CustomSections {
		path := fmt.Sprintf("customSections.%d", i)
		if cs == nil {
			ve.add(path, "custom section is required")
			continue
		}
		if !cs.Type.Valid() {
			ve.add(join(path, "type"), fmt.Sprintf("unknown section type %q", cs.Type))
			continue
		}
		validateItems(ve, join(path, "items"), cs.Type, cs.Items)
	}

	meta := &doc.Metadata
	if !meta.Template.Valid() {
		ve.add("metadata.template", fmt.Sprintf("unknown template %q", meta.Template))
	}
	if !meta.Page.Format.Valid() {
		ve.add("metadata.page.format", fmt.Sprintf("unknown page format %q", meta.Page.Format))
	}
	if !meta.Design.Level.Type.Valid() {
		ve.add("metadata.design.level.type", fmt.Sprintf("unknown level type %q", meta.Design.Level.Type))
	}
	fonts := []struct {
		role string
		font types.Font
	}{{"body", meta.Typography.Body}, {"heading", meta.Typography.Heading}}
	for _, f := range fonts {
		for i, w := range f.font.FontWeights {
			if !w.Valid() {
				ve.add(fmt.Sprintf("metadata.typography.%s.fontWeights.%d", f.role, i), fmt.Sprintf("unknown font weight %q", w))
			}
		}
	}

	return ve.errOrNil()
}

func validateItems(ve *ValidationError, path string, want types.CustomSectionType, items []types.Item) {
	for i, item := range items {
		itemPath := fmt.Sprintf("%s.%d", path, i)
		if item == nil {
			ve.add(itemPath, "item is required")
			continue
		}
		if got := item.Type(); got != want {
			ve.add(itemPath, fmt.Sprintf("%s item in %s section", got, want))
			continue
		}
		collect(ve, itemPath, validate.Struct(item))
	}
}

// collect converts validator errors into field errors under prefix.
func collect(ve *ValidationError, prefix string, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ve.add(join(prefix, "(root)"), err.Error())
		return
	}
	for _, fe := range verrs {
		// Namespace starts with the struct type name.
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		ve.add(join(prefix, field), describe(fe))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// MarshalResumeData encodes a document in its wire form.
func MarshalResumeData(doc *types.ResumeData) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	return data, nil
}
