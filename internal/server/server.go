// Package server hosts the onboarding wizard pages and the relay endpoints
// that keep vendor credentials away from the browser: payment-account
// creation, webhook receipt, and registration persistence.
package server

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	gothemepkg "github.com/goliatone/go-theme"

	"github.com/colossusofNero/smartonboarding/internal/config"
	"github.com/colossusofNero/smartonboarding/internal/render/gotemplate"
	"github.com/colossusofNero/smartonboarding/internal/theme"
	"github.com/colossusofNero/smartonboarding/internal/uischema"
	"github.com/colossusofNero/smartonboarding/pkg/handoff"
	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionTTL = 2 * time.Hour

// Options collects the server's collaborators. Accounts and Store may be nil
// in partial deployments; the corresponding operations then fail with a
// configuration error instead of panicking.
type Options struct {
	Config        config.Config
	Logger        *slog.Logger
	Form          pkgmodel.FormModel
	Steps         *uischema.Store
	Accounts      handoff.PaymentAccounts
	Store         handoff.RegistrationStore
	WebhookSecret string
	Theme         *gothemepkg.RendererConfig
}

// Server is the HTTP front-end for the onboarding wizard.
type Server struct {
	cfg        config.Config
	log        *slog.Logger
	engine     *gotemplate.Engine
	form       pkgmodel.FormModel
	steps      *uischema.Store
	themeStyle string
	sessions   *sessionStore
	adapter    *handoff.Adapter
	accounts   handoff.PaymentAccounts
	webhook    string
	handler    http.Handler
}

// New wires the wizard pages, the relay API, and the webhook receiver into
// one handler tree.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	templates, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: template tree: %w", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithGlobalData(map[string]any{
			"appName": "SMART Onboarding",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("server: template engine: %w", err)
	}

	var themeStyle string
	if opts.Theme != nil {
		themeStyle = theme.CSSVarsStyle(opts.Theme.CSSVars)
	}

	form := opts.Form
	s := &Server{
		cfg:        opts.Config,
		log:        opts.Logger,
		engine:     engine,
		form:       form,
		steps:      opts.Steps,
		themeStyle: themeStyle,
		accounts:   opts.Accounts,
		webhook:    opts.WebhookSecret,
	}

	totalSteps := form.TotalSteps()
	if !opts.Steps.Empty() {
		if n := len(opts.Steps.Steps()); n > totalSteps {
			totalSteps = n
		}
	}
	s.sessions = newSessionStore(sessionTTL, func() *wizard.Wizard {
		return wizard.New(form, wizard.WithTotalSteps(totalSteps))
	})

	base := opts.Config.FrontendURL
	s.adapter = handoff.New(opts.Accounts, opts.Store, handoff.WithCallbackURLs(
		base+"/onboarding?step=4",
		base+"/onboarding?step=3",
	))

	s.handler = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Server is running")
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("GET /onboarding", s.handleWizardPage)
	mux.HandleFunc("POST /onboarding", s.handleWizardAction)

	relay := http.Handler(http.HandlerFunc(s.handleCreateConnectAccount))
	if s.cfg.Production() {
		relay = requireHTTPS(relay)
	}
	mux.Handle("POST /api/create-connect-account", corsMiddleware(s.cfg.AllowedOrigins, relay))
	mux.Handle("OPTIONS /api/create-connect-account", corsMiddleware(s.cfg.AllowedOrigins, relay))

	// webhook deliveries are signed, not CORS-gated
	mux.HandleFunc("POST /webhook", s.handleWebhook)

	return mux
}

// connectionsConfigured reports whether the payment relay has a backing
// client.
func (s *Server) connectionsConfigured() bool {
	return s.accounts != nil
}

func isNotConfigured(err error) bool {
	return errors.Is(err, handoff.ErrNotConfigured)
}
