package caspio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRecord() map[string]string {
	return map[string]string{
		"email":            "cpa@firm.com",
		"firstName":        "Pat",
		"lastName":         "Rivera",
		"position":         "Partner",
		"firmName":         "Acme CPAs",
		"address1":         "100 Main St",
		"city":             "Scottsdale",
		"state":            "AZ",
		"postalCode":       "85251",
		"workNumber":       "(555) 123-4567",
		"cellNumber":       "(555) 987-6543",
		"paymentAccountId": "acct_123",
		"paymentOption":    "1",
	}
}

func TestInsertRegistration(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotAuth  string
		gotBody  map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"Result":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok_abc", "A_SqSpace_Users_SMART")
	if err := client.InsertRegistration(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("InsertRegistration returned error: %v", err)
	}

	if gotPath != "/rest/v2/tables/A_SqSpace_Users_SMART/records" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "response=rows" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotAuth != "Bearer tok_abc" {
		t.Errorf("unexpected authorization header %q", gotAuth)
	}

	want := map[string]string{
		"Email":                  "cpa@firm.com",
		"First_Name":             "Pat",
		"Last_Name":              "Rivera",
		"Full_Name":              "Pat Rivera",
		"Position":               "Partner",
		"Firm_Name":              "Acme CPAs",
		"address_1":              "100 Main St",
		"address_2":              "",
		"City":                   "Scottsdale",
		"State":                  "AZ",
		"postal_code":            "85251",
		"Work_Number":            "(555) 123-4567",
		"Cell_Number":            "(555) 987-6543",
		"Assistant_Name":         "",
		"Assistant_phone_number": "",
		"Stripe_Account_ID":      "acct_123",
		"SMART_Payment":          "1",
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertRegistrationSurfacesVendorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"duplicate email"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok_abc", "A_SqSpace_Users_SMART")
	err := client.InsertRegistration(context.Background(), sampleRecord())
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Error() != "duplicate email" {
		t.Fatalf("vendor message must surface verbatim, got %q", apiErr.Error())
	}
}

func TestInsertRegistrationGenericFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok_abc", "A_SqSpace_Users_SMART")
	err := client.InsertRegistration(context.Background(), sampleRecord())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
}
