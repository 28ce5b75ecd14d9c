package stripe

import (
	"context"
	"fmt"

	"github.com/colossusofNero/smartonboarding/pkg/handoff"
)

// Connector turns the two-call account-creation sequence into the single
// operation the wizard's handoff adapter expects. It satisfies
// handoff.PaymentAccounts.
type Connector struct {
	client *Client
}

// NewConnector wraps a Client.
func NewConnector(client *Client) *Connector {
	return &Connector{client: client}
}

// CreateAccountLink creates an Express account for the request's company and
// generates its hosted onboarding link.
func (c *Connector) CreateAccountLink(ctx context.Context, req handoff.ConnectRequest) (handoff.AccountLink, error) {
	account, err := c.client.CreateAccount(ctx, AccountParams{
		Email:       req.Email,
		CompanyName: req.Company,
	})
	if err != nil {
		return handoff.AccountLink{}, err
	}

	link, err := c.client.CreateAccountLink(ctx, AccountLinkParams{
		AccountID:  account.ID,
		ReturnURL:  req.ReturnURL,
		RefreshURL: req.RefreshURL,
	})
	if err != nil {
		return handoff.AccountLink{}, fmt.Errorf("account %s created but link failed: %w", account.ID, err)
	}

	return handoff.AccountLink{AccountID: account.ID, RedirectURL: link.URL}, nil
}
