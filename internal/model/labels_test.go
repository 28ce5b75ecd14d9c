package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"email", "Email"},
		{"firstName", "First Name"},
		{"workNumber", "Work Number"},
		{"address1", "Address 1"},
		{"postal_code", "Postal Code"},
		{"assistant-phone-number", "Assistant Phone Number"},
		{"paymentAccountId", "Payment Account ID"},
		{"smartPayment", "SMART Payment"},
		{"returnUrl", "Return URL"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.name); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
