package smartonboarding_test

import (
	"context"
	"testing"

	smartonboarding "github.com/colossusofNero/smartonboarding"
	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
)

func TestLoadFormModel(t *testing.T) {
	form, err := smartonboarding.LoadFormModel(context.Background())
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}

	if form.OperationID != smartonboarding.OperationID {
		t.Fatalf("operation id = %q, want %q", form.OperationID, smartonboarding.OperationID)
	}
	if form.Method != "POST" {
		t.Fatalf("method = %q, want POST", form.Method)
	}

	email, ok := form.Field("email")
	if !ok {
		t.Fatalf("field email missing from model")
	}
	if email.Label != "Email" || !email.Required || email.Step != 1 {
		t.Fatalf("email field = %+v, want required Email on step 1", email)
	}

	workNumber, ok := form.Field("workNumber")
	if !ok {
		t.Fatalf("field workNumber missing from model")
	}
	if !workNumber.IsPhone() {
		t.Fatalf("workNumber not recognized as a phone field: %+v", workNumber)
	}

	payment, ok := form.Field("paymentOption")
	if !ok {
		t.Fatalf("field paymentOption missing from model")
	}
	if payment.Label != "Payment Collection Preference" {
		t.Fatalf("paymentOption label = %q", payment.Label)
	}
	if len(payment.Options) != 2 {
		t.Fatalf("paymentOption has %d options, want 2", len(payment.Options))
	}

	account, ok := form.Field("paymentAccountId")
	if !ok {
		t.Fatalf("field paymentAccountId missing from model")
	}
	if !account.Locked || account.Step != 3 {
		t.Fatalf("paymentAccountId = %+v, want locked field on step 3", account)
	}
}

func TestLoadFormModelFieldOrder(t *testing.T) {
	form, err := smartonboarding.LoadFormModel(context.Background())
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}

	first := form.FieldsForStep(1)
	if len(first) == 0 {
		t.Fatalf("no fields on step 1")
	}
	want := []string{"email", "firstName", "lastName", "position", "workNumber", "cellNumber"}
	names := make([]string, 0, len(first))
	for _, f := range first {
		names = append(names, f.Name)
	}
	if len(names) != len(want) {
		t.Fatalf("step 1 fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("step 1 fields = %v, want %v", names, want)
		}
	}
}

func TestLoadSteps(t *testing.T) {
	steps, err := smartonboarding.LoadSteps()
	if err != nil {
		t.Fatalf("load steps: %v", err)
	}
	all := steps.Steps()
	if len(all) != 5 {
		t.Fatalf("got %d steps, want 5", len(all))
	}

	review, ok := steps.Step(5)
	if !ok {
		t.Fatalf("step 5 missing from overlay")
	}
	if review.NextLabel != "Complete Onboarding" {
		t.Fatalf("review next label = %q", review.NextLabel)
	}
}

func TestNewWizard(t *testing.T) {
	wiz, err := smartonboarding.NewWizard(context.Background())
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	if wiz.Step() != 1 {
		t.Fatalf("wizard starts on step %d, want 1", wiz.Step())
	}
	if wiz.TotalSteps() != 5 {
		t.Fatalf("wizard has %d steps, want 5", wiz.TotalSteps())
	}

	got, err := wiz.Set("workNumber", "5551234567")
	if err != nil {
		t.Fatalf("set workNumber: %v", err)
	}
	if got != "(555) 123-4567" {
		t.Fatalf("formatted phone = %q", got)
	}

	var _ pkgmodel.FormModel = wiz.Form()
}
