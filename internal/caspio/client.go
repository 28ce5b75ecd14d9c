// Package caspio persists completed registrations to the Caspio table API,
// the system of record for onboarding submissions.
package caspio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is the decoded body of a failed table-API request. Message, when
// present, is meant for the end user and is surfaced verbatim.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"Code"`
	Message    string `json:"Message"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("caspio: request failed with status %d", e.StatusCode)
}

// Registration mirrors the table's column names.
type Registration struct {
	Email                string `json:"Email"`
	FirstName            string `json:"First_Name"`
	LastName             string `json:"Last_Name"`
	FullName             string `json:"Full_Name"`
	Position             string `json:"Position"`
	FirmName             string `json:"Firm_Name"`
	Address1             string `json:"address_1"`
	Address2             string `json:"address_2"`
	City                 string `json:"City"`
	State                string `json:"State"`
	PostalCode           string `json:"postal_code"`
	WorkNumber           string `json:"Work_Number"`
	CellNumber           string `json:"Cell_Number"`
	AssistantName        string `json:"Assistant_Name"`
	AssistantPhoneNumber string `json:"Assistant_phone_number"`
	StripeAccountID      string `json:"Stripe_Account_ID"`
	SMARTPayment         string `json:"SMART_Payment"`
}

// FromRecord maps wizard field names onto table columns and derives the
// combined full name.
func FromRecord(record map[string]string) Registration {
	return Registration{
		Email:                record["email"],
		FirstName:            record["firstName"],
		LastName:             record["lastName"],
		FullName:             strings.TrimSpace(record["firstName"] + " " + record["lastName"]),
		Position:             record["position"],
		FirmName:             record["firmName"],
		Address1:             record["address1"],
		Address2:             record["address2"],
		City:                 record["city"],
		State:                record["state"],
		PostalCode:           record["postalCode"],
		WorkNumber:           record["workNumber"],
		CellNumber:           record["cellNumber"],
		AssistantName:        record["assistantName"],
		AssistantPhoneNumber: record["assistantPhoneNumber"],
		StripeAccountID:      record["paymentAccountId"],
		SMARTPayment:         record["paymentOption"],
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client inserts rows through the Caspio REST API using a static bearer
// token held server-side.
type Client struct {
	baseURL    string
	token      string
	table      string
	httpClient *http.Client
}

// NewClient builds a Client for one table on one Caspio account.
func NewClient(baseURL, token, table string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		table:      table,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		if option != nil {
			option(c)
		}
	}
	return c
}

// InsertRegistration writes one registration row. It satisfies the
// handoff.RegistrationStore interface.
func (c *Client) InsertRegistration(ctx context.Context, record map[string]string) error {
	payload, err := json.Marshal(FromRecord(record))
	if err != nil {
		return fmt.Errorf("caspio: encode registration: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v2/tables/%s/records?response=rows", c.baseURL, c.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("caspio: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("caspio: insert registration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode}
	}
	return decodeError(resp.StatusCode, body)
}

func decodeError(status int, body []byte) error {
	apiErr := &Error{StatusCode: status}
	// the API is inconsistent about casing on error payloads
	var wrapper struct {
		Code      string `json:"Code"`
		Message   string `json:"Message"`
		LowerCode string `json:"code"`
		LowerMsg  string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		apiErr.Code = wrapper.Code
		apiErr.Message = wrapper.Message
		if apiErr.Code == "" {
			apiErr.Code = wrapper.LowerCode
		}
		if apiErr.Message == "" {
			apiErr.Message = wrapper.LowerMsg
		}
	}
	return apiErr
}
