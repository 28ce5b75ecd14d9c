package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"] while pattern rules
// preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is a selectable choice for enum-backed fields, e.g. the payment
// collection preference radios.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// Field models an individual input inside the onboarding form. Struct fields
// are annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Step        int               `json:"step"`
	Locked      bool              `json:"locked,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsPhone reports whether the field carries the phone input format and should
// receive progressive (XXX) XXX-XXXX formatting.
func (f Field) IsPhone() bool {
	return f.Format == "phone"
}

// FormModel is the top-level representation both front-ends consume: the
// ordered field list plus the operation metadata of the persistence call the
// form ultimately feeds.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FieldsForStep returns the fields assigned to the given wizard step,
// preserving schema order.
func (m FormModel) FieldsForStep(step int) []Field {
	var out []Field
	for _, field := range m.Fields {
		if field.Step == step {
			out = append(out, field)
		}
	}
	return out
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// TotalSteps returns the highest step number any field is assigned to.
func (m FormModel) TotalSteps() int {
	max := 0
	for _, field := range m.Fields {
		if field.Step > max {
			max = field.Step
		}
	}
	return max
}
