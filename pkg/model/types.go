package model

import internalmodel "github.com/colossusofNero/smartonboarding/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

// Validation rule identifiers shared with renderers and the wizard.
const (
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

type ValidationRule = internalmodel.ValidationRule
type Option = internalmodel.Option
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// DefaultLabeler converts a property name into a human readable label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
