package handoff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

// ErrNotConfigured is returned when an operation requires a collaborator the
// adapter was built without.
var ErrNotConfigured = errors.New("handoff: collaborator not configured")

// AccountLink is the payment provider's answer to an account-creation
// request: an opaque account id and the hosted onboarding URL the browser
// must be sent to.
type AccountLink struct {
	AccountID   string
	RedirectURL string
}

// ConnectRequest carries the identity and company subset of the record plus
// the two callback URLs the provider redirects back to.
type ConnectRequest struct {
	Email      string
	Name       string
	Company    string
	ReturnURL  string
	RefreshURL string
}

// PaymentAccounts creates payment accounts and hosted onboarding links.
type PaymentAccounts interface {
	CreateAccountLink(ctx context.Context, req ConnectRequest) (AccountLink, error)
}

// RegistrationStore persists a completed registration record.
type RegistrationStore interface {
	InsertRegistration(ctx context.Context, record map[string]string) error
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCallbackURLs sets the return and refresh URLs sent alongside every
// connect request. The return URL should resume the wizard past the
// connection step; the refresh URL should land back on it.
func WithCallbackURLs(returnURL, refreshURL string) Option {
	return func(a *Adapter) {
		a.returnURL = returnURL
		a.refreshURL = refreshURL
	}
}

// Adapter encapsulates the two outbound calls the wizard makes: requesting a
// payment-account onboarding link, and persisting the finished record. Each
// operation is gated by its own wizard latch and leaves the record untouched
// on failure so the user can retry without re-entering data.
type Adapter struct {
	accounts   PaymentAccounts
	store      RegistrationStore
	returnURL  string
	refreshURL string
}

// New builds an Adapter over the given collaborators. Either may be nil when
// the corresponding operation is not needed; calling it then returns
// ErrNotConfigured.
func New(accounts PaymentAccounts, store RegistrationStore, options ...Option) *Adapter {
	a := &Adapter{accounts: accounts, store: store}
	for _, option := range options {
		if option != nil {
			option(a)
		}
	}
	return a
}

// Connect requests a payment-account onboarding link for the wizard's
// record. On success it stores the returned account id into the record and
// returns the URL the caller must navigate the browser to; the navigation is
// a full-page handoff, so everything not recoverable from the return URL's
// step indicator is abandoned. On failure the record and step are untouched.
func (a *Adapter) Connect(ctx context.Context, w *wizard.Wizard) (string, error) {
	if a.accounts == nil {
		return "", fmt.Errorf("handoff: connect payment account: %w", ErrNotConfigured)
	}
	record := w.Record()
	if missing := connectPreconditions(record); len(missing) > 0 {
		return "", fmt.Errorf("handoff: connect payment account: missing %s", strings.Join(missing, ", "))
	}

	release, err := w.BeginConnect()
	if err != nil {
		return "", fmt.Errorf("handoff: connect payment account: %w", err)
	}
	defer release()

	link, err := a.accounts.CreateAccountLink(ctx, ConnectRequest{
		Email:      record.Get("email"),
		Name:       strings.TrimSpace(record.Get("firstName") + " " + record.Get("lastName")),
		Company:    record.Get("firmName"),
		ReturnURL:  a.returnURL,
		RefreshURL: a.refreshURL,
	})
	if err != nil {
		return "", fmt.Errorf("handoff: connect payment account: %w", err)
	}
	if link.RedirectURL == "" {
		return "", errors.New("handoff: connect payment account: provider returned no onboarding link")
	}

	if link.AccountID != "" {
		record.Set("paymentAccountId", link.AccountID)
		// express accounts start unverified; completion happens on the
		// provider's hosted pages
		record.Set("paymentAccountStatus", "pending")
	}
	return link.RedirectURL, nil
}

// Submit validates the full record and, when valid, persists it in a single
// request. Validation failures are returned without touching the store; a
// store failure leaves the record intact for retry. A successful submission
// marks the wizard complete.
func (a *Adapter) Submit(ctx context.Context, w *wizard.Wizard) error {
	if a.store == nil {
		return fmt.Errorf("handoff: submit registration: %w", ErrNotConfigured)
	}
	if err := wizard.Validate(w.Form(), w.Record()); err != nil {
		return err
	}

	release, err := w.BeginSubmit()
	if err != nil {
		return fmt.Errorf("handoff: submit registration: %w", err)
	}
	defer release()

	if err := a.store.InsertRegistration(ctx, w.Record().Values()); err != nil {
		return fmt.Errorf("handoff: submit registration: %w", err)
	}
	w.MarkComplete()
	return nil
}

// connectPreconditions is a best-effort gate; the provider applies its own
// stricter validation.
func connectPreconditions(record *wizard.Record) []string {
	var missing []string
	for _, field := range []struct{ name, label string }{
		{"email", "Email"},
		{"firstName", "First Name"},
		{"lastName", "Last Name"},
		{"firmName", "Firm Name"},
	} {
		if strings.TrimSpace(record.Get(field.name)) == "" {
			missing = append(missing, field.label)
		}
	}
	return missing
}
