package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultWebhookTolerance bounds how old a webhook timestamp may be before
// the event is rejected as a possible replay.
const DefaultWebhookTolerance = 5 * time.Minute

var (
	// ErrInvalidSignature means the payload was not signed with the
	// configured webhook secret.
	ErrInvalidSignature = errors.New("stripe: webhook signature verification failed")
	// ErrSignatureExpired means the signature was valid but the timestamp
	// fell outside the tolerance window.
	ErrSignatureExpired = errors.New("stripe: webhook timestamp outside tolerance")
)

// Event is a verified webhook event. Data.Object holds the raw affected
// resource for callers that need more than the id.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ConstructEvent verifies the Stripe-Signature header against the raw
// payload and, when genuine and fresh, decodes the event. The header format
// is "t=<unix>,v1=<hex hmac>" with the HMAC-SHA256 computed over
// "<unix>.<payload>" using the webhook secret.
func ConstructEvent(payload []byte, header, secret string) (Event, error) {
	return constructEvent(payload, header, secret, DefaultWebhookTolerance, time.Now)
}

func constructEvent(payload []byte, header, secret string, tolerance time.Duration, now func() time.Time) (Event, error) {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return Event{}, err
	}

	expected := computeSignature(timestamp, payload, secret)
	matched := false
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return Event{}, ErrInvalidSignature
	}

	sent := time.Unix(timestamp, 0)
	if now().Sub(sent) > tolerance {
		return Event{}, ErrSignatureExpired
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("stripe: decode webhook event: %w", err)
	}
	return event, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		timestamp  int64 = -1
		signatures []string
	)
	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			parsed, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("stripe: malformed webhook timestamp: %w", err)
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, parts[1])
		}
	}
	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}
