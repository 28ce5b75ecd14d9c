// Package stripe is a minimal client for the two Stripe endpoints the
// onboarding relay uses: Express account creation and hosted account-link
// generation. It speaks the form-encoded API directly rather than pulling in
// the full vendor SDK.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	apiVersion     = "2023-10-16"

	statementDescriptor = "SMART COST SEG"
)

// Error is the decoded body of a non-2xx Stripe response.
type Error struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("stripe: request failed with status %d", e.StatusCode)
}

// Account is the subset of a Stripe account object the relay cares about.
type Account struct {
	ID string `json:"id"`
}

// AccountLink is a hosted onboarding link.
type AccountLink struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, typically a test
// server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client calls the Stripe API with a server-held secret key. The key never
// leaves this process; browsers only ever see the hosted link.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Client around the given secret key.
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		if option != nil {
			option(c)
		}
	}
	return c
}

// AccountParams describes the Express account to create.
type AccountParams struct {
	Email       string
	CompanyName string
}

// CreateAccount creates a US Express account for a company, requesting card
// payment and transfer capabilities.
func (c *Client) CreateAccount(ctx context.Context, params AccountParams) (Account, error) {
	form := url.Values{}
	form.Set("type", "express")
	form.Set("country", "US")
	form.Set("email", params.Email)
	form.Set("business_type", "company")
	form.Set("company[name]", params.CompanyName)
	form.Set("capabilities[card_payments][requested]", "true")
	form.Set("capabilities[transfers][requested]", "true")
	form.Set("settings[payments][statement_descriptor]", statementDescriptor)

	var account Account
	if err := c.post(ctx, "/v1/accounts", form, &account); err != nil {
		return Account{}, fmt.Errorf("stripe: create account: %w", err)
	}
	return account, nil
}

// AccountLinkParams describes the hosted onboarding link to generate.
type AccountLinkParams struct {
	AccountID  string
	ReturnURL  string
	RefreshURL string
}

// CreateAccountLink generates a hosted onboarding link for the account,
// collecting everything the account will eventually owe.
func (c *Client) CreateAccountLink(ctx context.Context, params AccountLinkParams) (AccountLink, error) {
	form := url.Values{}
	form.Set("account", params.AccountID)
	form.Set("refresh_url", params.RefreshURL)
	form.Set("return_url", params.ReturnURL)
	form.Set("type", "account_onboarding")
	form.Set("collect", "eventually_due")

	var link AccountLink
	if err := c.post(ctx, "/v1/account_links", form, &link); err != nil {
		return AccountLink{}, fmt.Errorf("stripe: create account link: %w", err)
	}
	return link, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var wrapper struct {
		Error Error `json:"error"`
	}
	apiErr := Error{StatusCode: status}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		apiErr = wrapper.Error
		apiErr.StatusCode = status
	}
	return &apiErr
}
