package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/colossusofNero/smartonboarding/pkg/openapi"
)

const (
	stepExtensionKey        = "x-onboarding-step"
	orderExtensionKey       = "x-onboarding-order"
	lockedExtensionKey      = "x-onboarding-locked"
	placeholderExtensionKey = "x-onboarding-placeholder"
	optionsExtensionKey     = "x-onboarding-options"
)

// Options configures the Builder.
type Options struct {
	// Labeler overrides the fallback name-to-label conversion. Schema titles
	// always win over the labeler.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{Labeler: DefaultLabeler}
}

// Builder converts OpenAPI operations into the onboarding form model.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel suitable for the
// wizard. Only flat string/boolean properties are supported; the onboarding
// record has no nested structure.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
	}

	body := op.RequestBody
	if body.Type != "object" && body.Type != "" {
		return FormModel{}, fmt.Errorf("model builder: request body must be an object, got %q", body.Type)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	fields := make([]Field, 0, len(body.Properties))
	for name, property := range body.Properties {
		field, err := b.fieldFromProperty(name, property, required[name])
		if err != nil {
			return FormModel{}, err
		}
		fields = append(fields, field)
	}

	sortFields(fields)
	form.Fields = fields
	return form, nil
}

func (b *Builder) fieldFromProperty(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	fieldType := FieldTypeString
	switch schema.Type {
	case "string", "":
		fieldType = FieldTypeString
	case "boolean":
		fieldType = FieldTypeBoolean
	default:
		return Field{}, fmt.Errorf("model builder: unsupported property type %q for %q", schema.Type, name)
	}

	field := Field{
		Name:        name,
		Type:        fieldType,
		Format:      schema.Format,
		Required:    required,
		Label:       schema.Title,
		Description: schema.Description,
		Default:     schema.Default,
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}

	field.Step = intExtension(schema.Extensions, stepExtensionKey, 1)
	field.Locked = boolExtension(schema.Extensions, lockedExtensionKey)
	field.Placeholder = stringExtension(schema.Extensions, placeholderExtensionKey)
	field.Options = optionsFromSchema(schema)

	if order := intExtension(schema.Extensions, orderExtensionKey, 0); order != 0 {
		field.ensureMetadata()["order"] = strconv.Itoa(order)
	}

	applyValidations(&field, schema)
	if len(field.Metadata) == 0 {
		field.Metadata = nil
	}
	return field, nil
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
}

// optionsFromSchema prefers the x-onboarding-options extension, which carries
// labels and descriptions for each choice, and falls back to the bare enum.
func optionsFromSchema(schema pkgopenapi.Schema) []Option {
	if raw, ok := schema.Extensions[optionsExtensionKey]; ok {
		if options := decodeOptions(raw); len(options) > 0 {
			return options
		}
	}
	if len(schema.Enum) == 0 {
		return nil
	}
	options := make([]Option, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		str := toString(value)
		options = append(options, Option{Value: str, Label: str})
	}
	return options
}

func decodeOptions(raw any) []Option {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	options := make([]Option, 0, len(list))
	for _, entry := range list {
		mapped, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		option := Option{
			Value:       toString(mapped["value"]),
			Label:       toString(mapped["label"]),
			Description: toString(mapped["description"]),
		}
		if option.Value == "" {
			continue
		}
		if option.Label == "" {
			option.Label = option.Value
		}
		options = append(options, option)
	}
	return options
}

// sortFields orders by step, then the explicit order hint, then name so the
// rendered sequence is stable even though OpenAPI properties are a map.
func sortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Step != fields[j].Step {
			return fields[i].Step < fields[j].Step
		}
		oi, oj := fieldOrder(fields[i]), fieldOrder(fields[j])
		if oi != oj {
			return oi < oj
		}
		return fields[i].Name < fields[j].Name
	})
}

func fieldOrder(field Field) int {
	raw := field.Metadata["order"]
	if raw == "" {
		return 1 << 20
	}
	order, err := strconv.Atoi(raw)
	if err != nil {
		return 1 << 20
	}
	return order
}

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return fmt.Errorf("model builder: operation id is required")
	}
	if op.Method == "" || op.Path == "" {
		return fmt.Errorf("model builder: operation %q is missing method or path", op.ID)
	}
	return nil
}

func (f *Field) ensureMetadata() map[string]string {
	if f.Metadata == nil {
		f.Metadata = make(map[string]string)
	}
	return f.Metadata
}

func intExtension(ext map[string]any, key string, fallback int) int {
	raw, ok := ext[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolExtension(ext map[string]any, key string) bool {
	raw, ok := ext[key]
	if !ok {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

func stringExtension(ext map[string]any, key string) string {
	raw, ok := ext[key]
	if !ok {
		return ""
	}
	if str, ok := raw.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
