package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"
)

const webhookSecret = "whsec_test"

func signPayload(t *testing.T, payload []byte, timestamp int64, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated","data":{"object":{"id":"acct_123"}}}`)
	now := time.Unix(1700000000, 0)
	header := signPayload(t, payload, now.Unix(), webhookSecret)

	event, err := constructEvent(payload, header, webhookSecret, DefaultWebhookTolerance, func() time.Time { return now })
	if err != nil {
		t.Fatalf("constructEvent returned error: %v", err)
	}
	if event.ID != "evt_1" {
		t.Errorf("unexpected event id %q", event.ID)
	}
	if event.Type != "account.updated" {
		t.Errorf("unexpected event type %q", event.Type)
	}
	if len(event.Data.Object) == 0 {
		t.Errorf("expected raw object payload")
	}
}

func TestConstructEventRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	now := time.Unix(1700000000, 0)
	header := signPayload(t, payload, now.Unix(), "whsec_other")

	_, err := constructEvent(payload, header, webhookSecret, DefaultWebhookTolerance, func() time.Time { return now })
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestConstructEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	now := time.Unix(1700000000, 0)
	header := signPayload(t, payload, now.Unix(), webhookSecret)

	tampered := []byte(`{"id":"evt_2","type":"account.updated"}`)
	_, err := constructEvent(tampered, header, webhookSecret, DefaultWebhookTolerance, func() time.Time { return now })
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestConstructEventRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	sent := time.Unix(1700000000, 0)
	header := signPayload(t, payload, sent.Unix(), webhookSecret)

	now := sent.Add(10 * time.Minute)
	_, err := constructEvent(payload, header, webhookSecret, DefaultWebhookTolerance, func() time.Time { return now })
	if !errors.Is(err, ErrSignatureExpired) {
		t.Fatalf("expected ErrSignatureExpired, got %v", err)
	}
}

func TestConstructEventRejectsMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)
	for _, header := range []string{"", "v1=deadbeef", "t=notanumber,v1=deadbeef"} {
		if _, err := ConstructEvent(payload, header, webhookSecret); err == nil {
			t.Errorf("header %q should be rejected", header)
		}
	}
}
