package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/colossusofNero/smartonboarding/internal/caspio"
	"github.com/colossusofNero/smartonboarding/internal/stripe"
	"github.com/colossusofNero/smartonboarding/pkg/handoff"
	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

const maxBodyBytes = 64 * 1024

// handleWizardPage renders the current step. A "step" query parameter
// repositions the wizard first, which is how the payment provider's return
// and refresh redirects resume the flow.
func (s *Server) handleWizardPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if step := r.URL.Query().Get("step"); step != "" {
		sess.wizard.Resume(step)
	}
	s.renderPage(w, sess.wizard, "")
}

// handleWizardAction stores the posted field values and then performs the
// requested transition: next, previous, connect, or submit.
func (s *Server) handleWizardAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	sess := s.sessions.get(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	wiz := sess.wizard

	// persist whatever the current step collected; values for other steps
	// are never discarded by navigation
	for _, field := range wiz.Fields() {
		if !r.PostForm.Has(field.Name) || field.Locked {
			continue
		}
		if _, err := wiz.Set(field.Name, r.PostForm.Get(field.Name)); err != nil {
			s.log.Warn("store field", "field", field.Name, "error", err)
		}
	}

	switch action := r.PostForm.Get("action"); action {
	case "previous":
		wiz.Previous()
		s.redirectToStep(w, r, wiz.Step())
	case "next", "":
		wiz.Next()
		s.redirectToStep(w, r, wiz.Step())
	case "connect":
		s.connect(w, r, wiz)
	case "submit":
		s.submit(w, r, wiz)
	default:
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
	}
}

func (s *Server) connect(w http.ResponseWriter, r *http.Request, wiz *wizard.Wizard) {
	redirect, err := s.adapter.Connect(r.Context(), wiz)
	if err != nil {
		s.log.Error("connect payment account", "error", err)
		s.renderPage(w, wiz, userMessage(err))
		return
	}
	// full-page handoff to the provider's hosted onboarding
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request, wiz *wizard.Wizard) {
	if err := s.adapter.Submit(r.Context(), wiz); err != nil {
		s.log.Error("submit registration", "error", err)
		s.renderPage(w, wiz, userMessage(err))
		return
	}
	s.renderComplete(w, wiz)
}

func (s *Server) redirectToStep(w http.ResponseWriter, r *http.Request, step int) {
	http.Redirect(w, r, fmt.Sprintf("/onboarding?step=%d", step), http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, wiz *wizard.Wizard, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := s.engine.Render("onboarding", s.pageFor(wiz, errMsg), w); err != nil {
		s.log.Error("render wizard page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) renderComplete(w http.ResponseWriter, wiz *wizard.Wizard) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{
		"themeStyle": s.themeStyle,
		"accountId":  sanitizeValue(wiz.Get("paymentAccountId")),
		"email":      sanitizeValue(wiz.Get("email")),
	}
	if _, err := s.engine.Render("complete", data, w); err != nil {
		s.log.Error("render completion page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type connectAccountRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	ReturnURL  string `json:"returnUrl"`
	RefreshURL string `json:"refreshUrl"`
}

type connectAccountResponse struct {
	AccountLink string `json:"accountLink"`
	AccountID   string `json:"accountId"`
}

// handleCreateConnectAccount is the JSON relay used by external front-ends.
// It performs the same two-call provider sequence as the wizard's connect
// action, holding the secret key server-side.
func (s *Server) handleCreateConnectAccount(w http.ResponseWriter, r *http.Request) {
	if !s.connectionsConfigured() {
		writeJSONError(w, http.StatusServiceUnavailable, "payment provider not configured")
		return
	}

	var req connectAccountRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ReturnURL == "" {
		req.ReturnURL = s.cfg.FrontendURL + "/onboarding?step=4"
	}
	if req.RefreshURL == "" {
		req.RefreshURL = s.cfg.FrontendURL + "/onboarding?step=3"
	}

	link, err := s.accounts.CreateAccountLink(r.Context(), handoff.ConnectRequest{
		Email:      req.Email,
		Name:       req.Name,
		Company:    req.Company,
		ReturnURL:  req.ReturnURL,
		RefreshURL: req.RefreshURL,
	})
	if err != nil {
		s.log.Error("create connect account", "error", err)
		writeJSONError(w, http.StatusInternalServerError, userMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, connectAccountResponse{
		AccountLink: link.RedirectURL,
		AccountID:   link.AccountID,
	})
}

// handleWebhook verifies the provider's signature before acknowledging the
// event. Event handling is log-only; account state lives with the provider.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Webhook Error: unreadable payload", http.StatusBadRequest)
		return
	}

	event, err := stripe.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), s.webhook)
	if err != nil {
		s.log.Warn("webhook rejected", "error", err)
		http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "account.updated",
		"account.application.authorized",
		"account.application.deauthorized":
		s.log.Info("webhook event", "type", event.Type, "id", event.ID)
	default:
		s.log.Debug("webhook event ignored", "type", event.Type, "id", event.ID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// userMessage maps an operation error onto the message shown to the user.
// Vendor-provided messages and validation results surface verbatim;
// everything else collapses to a generic failure.
func userMessage(err error) string {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var cerr *caspio.Error
	if errors.As(err, &cerr) {
		return cerr.Error()
	}
	var serr *stripe.Error
	if errors.As(err, &serr) {
		return serr.Error()
	}
	if errors.Is(err, wizard.ErrBusy) {
		return "That request is already in progress."
	}
	if isNotConfigured(err) {
		return "This feature is not available right now. Please contact support."
	}
	return "Something went wrong. Please try again."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
