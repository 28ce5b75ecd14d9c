package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func filledRecord() *Record {
	r := NewRecord()
	r.Set("email", "cpa@firm.com")
	r.Set("firstName", "Pat")
	r.Set("workNumber", "(555) 123-4567")
	r.Set("cellNumber", "(555) 987-6543")
	r.Set("firmName", "Acme CPAs")
	r.Set("city", "Scottsdale")
	return r
}

func TestValidatePasses(t *testing.T) {
	if err := Validate(testForm(), filledRecord()); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidateAggregatesMissingFields(t *testing.T) {
	record := filledRecord()
	record.Set("city", "")
	record.Set("firstName", "  ")

	err := Validate(testForm(), record)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	want := []string{"First Name", "City"}
	if diff := cmp.Diff(want, verr.Missing); diff != "" {
		t.Fatalf("missing labels mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePhoneShape(t *testing.T) {
	record := filledRecord()
	record.Set("workNumber", "555-123-4567")

	err := Validate(testForm(), record)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Missing) != 0 {
		t.Fatalf("no fields should be missing, got %v", verr.Missing)
	}
	want := []string{"Work Phone"}
	if diff := cmp.Diff(want, verr.MalformedPhones); diff != "" {
		t.Fatalf("malformed phones mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateOptionalPhoneCheckedOnlyWhenPresent(t *testing.T) {
	record := filledRecord()
	if err := Validate(testForm(), record); err != nil {
		t.Fatalf("empty optional phone should not fail validation: %v", err)
	}

	record.Set("assistantPhoneNumber", "(555) 11")
	err := Validate(testForm(), record)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{"Assistant Phone"}
	if diff := cmp.Diff(want, verr.MalformedPhones); diff != "" {
		t.Fatalf("malformed phones mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateEmptyRequiredPhoneReportedOnce(t *testing.T) {
	record := filledRecord()
	record.Set("cellNumber", "")

	err := Validate(testForm(), record)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Cell Phone"}, verr.Missing); diff != "" {
		t.Fatalf("missing labels mismatch (-want +got):\n%s", diff)
	}
	if len(verr.MalformedPhones) != 0 {
		t.Fatalf("empty phone must not double-report, got %v", verr.MalformedPhones)
	}
}

func TestMissingRequiredSkipsLockedFields(t *testing.T) {
	form := testForm()
	missing := MissingRequired(NewRecord(), form.FieldsForStep(3))
	if len(missing) != 0 {
		t.Fatalf("locked fields are never user-required, got %v", missing)
	}
}

func TestValidateStepScopesToStep(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5), WithRecord(NewRecord()))
	if _, err := w.Set("email", "cpa@firm.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}

	err := w.ValidateStep(1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{"First Name", "Work Phone", "Cell Phone"}
	if diff := cmp.Diff(want, verr.Missing); diff != "" {
		t.Fatalf("missing labels mismatch (-want +got):\n%s", diff)
	}

	// step 2's gaps must not leak into step 1's result
	for _, label := range verr.Missing {
		if label == "Firm Name" || label == "City" {
			t.Fatalf("step 1 validation reported step 2 field %q", label)
		}
	}
}

func TestWizardValidateDelegates(t *testing.T) {
	w := New(testForm(), WithRecord(filledRecord()))
	if err := w.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}
