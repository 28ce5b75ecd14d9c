// Command onboarding-server hosts the SMART onboarding wizard and its relay
// endpoints. All vendor credentials come from the environment and stay
// server-side.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	smartonboarding "github.com/colossusofNero/smartonboarding"
	"github.com/colossusofNero/smartonboarding/internal/caspio"
	"github.com/colossusofNero/smartonboarding/internal/config"
	"github.com/colossusofNero/smartonboarding/internal/server"
	"github.com/colossusofNero/smartonboarding/internal/stripe"
	"github.com/colossusofNero/smartonboarding/internal/theme"
	"github.com/colossusofNero/smartonboarding/pkg/handoff"
)

func main() {
	addrFlag := flag.String("addr", "", "listen address (overrides ADDR)")
	shutdownGrace := flag.Duration("shutdown-grace", 10*time.Second, "graceful shutdown window")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if err := cfg.Validate(); err != nil {
		// partial deployments still serve the wizard pages
		log.Warn("incomplete credentials", "error", err)
	}

	form, err := smartonboarding.LoadFormModel(context.Background())
	if err != nil {
		log.Error("load form model", "error", err)
		os.Exit(1)
	}
	steps, err := smartonboarding.LoadSteps()
	if err != nil {
		log.Error("load steps", "error", err)
		os.Exit(1)
	}

	themeCfg, err := theme.NewSelector(theme.Default()).Config(cfg.ThemeName, cfg.ThemeVariant)
	if err != nil {
		log.Error("resolve theme", "error", err)
		os.Exit(1)
	}

	var accounts handoff.PaymentAccounts
	if cfg.StripeSecretKey != "" {
		accounts = stripe.NewConnector(stripe.NewClient(cfg.StripeSecretKey))
	}
	var store handoff.RegistrationStore
	if cfg.CaspioToken != "" {
		store = caspio.NewClient(cfg.CaspioBaseURL, cfg.CaspioToken, cfg.CaspioTable)
	}

	srv, err := server.New(server.Options{
		Config:        cfg,
		Logger:        log,
		Form:          form,
		Steps:         steps,
		Accounts:      accounts,
		Store:         store,
		WebhookSecret: cfg.StripeWebhookSecret,
		Theme:         themeCfg,
	})
	if err != nil {
		log.Error("build server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv,
	}

	log.Info("listening", "addr", cfg.Addr, "env", cfg.Environment)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Error("listen", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", "error", err)
	}
}
