package wizard

import (
	"errors"
	"testing"

	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
)

func testForm() pkgmodel.FormModel {
	return pkgmodel.FormModel{
		OperationID: "submitOnboarding",
		Fields: []pkgmodel.Field{
			{Name: "email", Label: "Email", Type: pkgmodel.FieldTypeString, Required: true, Step: 1},
			{Name: "firstName", Label: "First Name", Type: pkgmodel.FieldTypeString, Required: true, Step: 1},
			{Name: "workNumber", Label: "Work Phone", Type: pkgmodel.FieldTypeString, Format: "phone", Required: true, Step: 1},
			{Name: "cellNumber", Label: "Cell Phone", Type: pkgmodel.FieldTypeString, Format: "phone", Required: true, Step: 1},
			{Name: "firmName", Label: "Firm Name", Type: pkgmodel.FieldTypeString, Required: true, Step: 2},
			{Name: "city", Label: "City", Type: pkgmodel.FieldTypeString, Required: true, Step: 2},
			{Name: "paymentAccountId", Label: "Payment Account", Type: pkgmodel.FieldTypeString, Step: 3, Locked: true},
			{Name: "assistantPhoneNumber", Label: "Assistant Phone", Type: pkgmodel.FieldTypeString, Format: "phone", Step: 4},
		},
	}
}

func TestWizardStepClamping(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5))

	if w.Step() != 1 {
		t.Fatalf("new wizard should start at step 1, got %d", w.Step())
	}
	if got := w.Previous(); got != 1 {
		t.Fatalf("previous from step 1 should stay at 1, got %d", got)
	}
	for i := 0; i < 10; i++ {
		w.Next()
	}
	if w.Step() != 5 {
		t.Fatalf("next past the last step should clamp at 5, got %d", w.Step())
	}
}

func TestWizardResume(t *testing.T) {
	cases := []struct {
		param string
		want  int
	}{
		{"4", 4},
		{"1", 1},
		{"5", 5},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"9", 1},
		{"-2", 1},
	}
	for _, tc := range cases {
		w := New(testForm(), WithTotalSteps(5))
		if got := w.Resume(tc.param); got != tc.want {
			t.Errorf("Resume(%q) = %d, want %d", tc.param, got, tc.want)
		}
	}
}

func TestWizardSetFormatsPhones(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5))

	got, err := w.Set("workNumber", "5551234567")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got != "(555) 123-4567" {
		t.Fatalf("expected formatted phone, got %q", got)
	}

	// over the digit cap the stored value must not change
	got, err = w.Set("workNumber", "55512345678")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got != "(555) 123-4567" {
		t.Fatalf("expected prior value after overflow, got %q", got)
	}

	if _, err := w.Set("nope", "x"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestWizardValuesSurviveNavigation(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5))
	if _, err := w.Set("email", "cpa@firm.com"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	w.Next()
	if _, err := w.Set("firmName", "Acme CPAs"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	w.Previous()
	w.Next()
	w.Next()

	if got := w.Get("email"); got != "cpa@firm.com" {
		t.Fatalf("email lost across navigation, got %q", got)
	}
	if got := w.Get("firmName"); got != "Acme CPAs" {
		t.Fatalf("firmName lost across navigation, got %q", got)
	}
}

func TestWizardLatches(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5))

	release, err := w.BeginConnect()
	if err != nil {
		t.Fatalf("BeginConnect returned error: %v", err)
	}
	if !w.Connecting() {
		t.Fatalf("connecting latch should be raised")
	}
	if _, err := w.BeginConnect(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for duplicate connect, got %v", err)
	}
	release()
	if w.Connecting() {
		t.Fatalf("connecting latch should be released")
	}
	if _, err := w.BeginConnect(); err != nil {
		t.Fatalf("connect should be available again: %v", err)
	}

	if _, err := w.BeginSubmit(); err != nil {
		t.Fatalf("submit latch is independent of connect: %v", err)
	}
	if _, err := w.BeginSubmit(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for duplicate submit, got %v", err)
	}
}

func TestSetIgnoresLockedFields(t *testing.T) {
	w := New(testForm(), WithTotalSteps(5))
	w.Record().Set("paymentAccountId", "acct_123")

	got, err := w.Set("paymentAccountId", "")
	if err != nil {
		t.Fatalf("set locked field: %v", err)
	}
	if got != "acct_123" {
		t.Fatalf("locked value changed to %q", got)
	}
	if w.Get("paymentAccountId") != "acct_123" {
		t.Fatalf("locked value cleared from record")
	}
}
