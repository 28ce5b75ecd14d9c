package wizard

import (
	"strings"

	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
)

// ValidationError aggregates every validation failure across the whole
// record rather than stopping at the first one. Missing holds the labels of
// empty required fields; MalformedPhones holds the labels of phone fields
// whose value does not match the canonical shape.
type ValidationError struct {
	Missing         []string
	MalformedPhones []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "please fill in the following required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, label := range e.MalformedPhones {
		parts = append(parts, label+" must be in the format (XXX) XXX-XXXX")
	}
	if len(parts) == 0 {
		return "wizard: validation failed"
	}
	return strings.Join(parts, "; ")
}

// MissingRequired returns the labels of every required field in the given
// field set that is empty in the record. An empty result means the set is
// satisfied.
func MissingRequired(record *Record, fields []pkgmodel.Field) []string {
	var missing []string
	for _, field := range fields {
		if !field.Required || field.Locked {
			continue
		}
		if strings.TrimSpace(record.Get(field.Name)) == "" {
			missing = append(missing, field.Label)
		}
	}
	return missing
}

// ValidateStep checks only the fields grouped under the given step. Step
// navigation is lenient and does not call this; it exists for callers that
// want early feedback before the final submission gate.
func (w *Wizard) ValidateStep(step int) error {
	fields := w.form.FieldsForStep(step)
	verr := &ValidationError{
		Missing: MissingRequired(w.record, fields),
	}
	for _, field := range fields {
		if !field.IsPhone() {
			continue
		}
		value := w.record.Get(field.Name)
		if value == "" {
			continue
		}
		if !ValidPhone(value) {
			verr.MalformedPhones = append(verr.MalformedPhones, field.Label)
		}
	}
	if len(verr.Missing) == 0 && len(verr.MalformedPhones) == 0 {
		return nil
	}
	return verr
}

// Validate runs the full-form check over the wizard's own record.
func (w *Wizard) Validate() error {
	return Validate(w.form, w.record)
}

// Validate performs the full-form check gating final submission: required
// fields across all steps plus phone shape on every phone field that is
// required or holds a value. Failures are aggregated into a single
// *ValidationError; a nil return means the record may be submitted.
func Validate(form pkgmodel.FormModel, record *Record) error {
	verr := &ValidationError{
		Missing: MissingRequired(record, form.Fields),
	}
	for _, field := range form.Fields {
		if !field.IsPhone() {
			continue
		}
		value := record.Get(field.Name)
		if value == "" {
			// an empty required phone is already reported as missing
			continue
		}
		if !ValidPhone(value) {
			verr.MalformedPhones = append(verr.MalformedPhones, field.Label)
		}
	}
	if len(verr.Missing) == 0 && len(verr.MalformedPhones) == 0 {
		return nil
	}
	return verr
}
