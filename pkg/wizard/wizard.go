package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
)

// ErrBusy is returned when a connect or submit operation is already in
// flight. The latches exist to stop duplicate requests from double-clicks,
// not to coordinate across sessions.
var ErrBusy = errors.New("wizard: operation already in flight")

// Option configures a Wizard.
type Option func(*Wizard)

// WithTotalSteps overrides the step count derived from the form model. The
// review step carries no fields of its own, so the model alone undercounts.
func WithTotalSteps(total int) Option {
	return func(w *Wizard) {
		if total > 0 {
			w.totalSteps = total
		}
	}
}

// WithRecord seeds the wizard with an existing record instead of an empty
// one, preserving values across a resumed session.
func WithRecord(record *Record) Option {
	return func(w *Wizard) {
		if record != nil {
			w.record = record
		}
	}
}

// Wizard owns the current step, the form record, and the two busy latches.
// It is not safe for concurrent use; callers serving multiple goroutines
// must serialize access per session.
type Wizard struct {
	form       pkgmodel.FormModel
	record     *Record
	step       int
	totalSteps int
	connecting bool
	submitting bool
	complete   bool
}

// New creates a wizard positioned at step 1 with an empty record.
func New(form pkgmodel.FormModel, options ...Option) *Wizard {
	w := &Wizard{
		form:       form,
		record:     NewRecord(),
		step:       1,
		totalSteps: form.TotalSteps(),
	}
	for _, option := range options {
		if option != nil {
			option(w)
		}
	}
	if w.totalSteps < 1 {
		w.totalSteps = 1
	}
	return w
}

// Form returns the form model the wizard was built from.
func (w *Wizard) Form() pkgmodel.FormModel { return w.form }

// Record returns the live record. Mutations through the record bypass phone
// formatting; prefer Set.
func (w *Wizard) Record() *Record { return w.record }

// Step returns the current step, 1-based.
func (w *Wizard) Step() int { return w.step }

// TotalSteps returns the number of steps in the wizard.
func (w *Wizard) TotalSteps() int { return w.totalSteps }

// Fields returns the form fields bound to the current step in display order.
func (w *Wizard) Fields() []pkgmodel.Field {
	return w.form.FieldsForStep(w.step)
}

// Next advances one step, clamped at the last step, and returns the new
// step. Intermediate steps are deliberately not validated; only final
// submission validates the whole record.
func (w *Wizard) Next() int {
	if w.step < w.totalSteps {
		w.step++
	}
	return w.step
}

// Previous retreats one step, clamped at step 1, and returns the new step.
func (w *Wizard) Previous() int {
	if w.step > 1 {
		w.step--
	}
	return w.step
}

// Resume positions the wizard from an external step indicator, typically the
// "step" query parameter on the return trip from the payment provider. An
// absent, malformed, or out-of-range indicator lands on step 1.
func (w *Wizard) Resume(stepParam string) int {
	w.step = 1
	parsed, err := strconv.Atoi(strings.TrimSpace(stepParam))
	if err == nil && parsed >= 1 && parsed <= w.totalSteps {
		w.step = parsed
	}
	return w.step
}

// Set stores a field value, applying the phone mask when the field carries
// the phone format. It returns the value actually stored: for phone fields
// over the digit cap that is the prior value, unchanged.
func (w *Wizard) Set(name, value string) (string, error) {
	field, ok := w.form.Field(name)
	if !ok {
		return "", fmt.Errorf("wizard: unknown field %q", name)
	}
	if field.Locked {
		// locked fields are external references; only the handoff flow
		// writes them, through the record directly
		return w.record.Get(name), nil
	}
	if field.IsPhone() {
		value = FormatPhone(w.record.Get(name), value)
	}
	w.record.Set(name, value)
	return value, nil
}

// Get returns the stored value for the named field.
func (w *Wizard) Get(name string) string {
	return w.record.Get(name)
}

// Connecting reports whether a payment-account connection is in flight.
func (w *Wizard) Connecting() bool { return w.connecting }

// Submitting reports whether a record submission is in flight.
func (w *Wizard) Submitting() bool { return w.submitting }

// BeginConnect raises the connecting latch and returns its release. The
// release must be deferred immediately so the latch clears on every path,
// including error returns and panics.
func (w *Wizard) BeginConnect() (func(), error) {
	if w.connecting {
		return nil, ErrBusy
	}
	w.connecting = true
	return func() { w.connecting = false }, nil
}

// BeginSubmit raises the submitting latch and returns its release.
func (w *Wizard) BeginSubmit() (func(), error) {
	if w.submitting {
		return nil, ErrBusy
	}
	w.submitting = true
	return func() { w.submitting = false }, nil
}

// MarkComplete records that the final submission succeeded. This is a UI
// acknowledgment only; the user may still navigate back.
func (w *Wizard) MarkComplete() { w.complete = true }

// Complete reports whether the wizard finished its final submission.
func (w *Wizard) Complete() bool { return w.complete }
