// Command onboarding-cli walks the SMART onboarding wizard in a terminal.
// It prompts through the same five steps the web wizard serves, generates
// the hosted payment-account link, and submits the finished record. Vendor
// credentials come from the environment, same as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	smartonboarding "github.com/colossusofNero/smartonboarding"
	"github.com/colossusofNero/smartonboarding/internal/caspio"
	"github.com/colossusofNero/smartonboarding/internal/config"
	"github.com/colossusofNero/smartonboarding/internal/stripe"
	"github.com/colossusofNero/smartonboarding/internal/tui"
	"github.com/colossusofNero/smartonboarding/pkg/handoff"
)

func main() {
	resumeStep := flag.Int("resume-step", 1, "step to resume from (1-5)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, *resumeStep); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		log.Error("onboarding", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, resumeStep int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		// a dry run without credentials still walks the prompts
		log.Warn("incomplete credentials", "error", err)
	}

	wiz, err := smartonboarding.NewWizard(ctx)
	if err != nil {
		return err
	}
	wiz.Resume(strconv.Itoa(resumeStep))

	steps, err := smartonboarding.LoadSteps()
	if err != nil {
		return err
	}

	var accounts handoff.PaymentAccounts
	if cfg.StripeSecretKey != "" {
		accounts = stripe.NewConnector(stripe.NewClient(cfg.StripeSecretKey))
	}
	var store handoff.RegistrationStore
	if cfg.CaspioToken != "" {
		store = caspio.NewClient(cfg.CaspioBaseURL, cfg.CaspioToken, cfg.CaspioTable)
	}

	var adapter *handoff.Adapter
	if accounts != nil || store != nil {
		adapter = handoff.New(accounts, store, handoff.WithCallbackURLs(
			cfg.FrontendURL+"/onboarding?step=4",
			cfg.FrontendURL+"/onboarding?step=3",
		))
	}

	runner := tui.NewRunner(tui.WithSteps(steps), tui.WithAdapter(adapter))
	return runner.Run(ctx, wiz)
}
