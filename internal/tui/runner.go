package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/colossusofNero/smartonboarding/internal/uischema"
	"github.com/colossusofNero/smartonboarding/pkg/handoff"
	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

// Runner walks a wizard over the terminal, prompting for each step's fields
// and driving the payment-account connection and final submission through the
// handoff adapter. The adapter may be nil; connection and submission are then
// skipped with a notice, which keeps the walk usable for dry runs.
type Runner struct {
	driver  PromptDriver
	steps   *uischema.Store
	adapter *handoff.Adapter
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDriver replaces the default survey-backed prompt driver.
func WithDriver(driver PromptDriver) RunnerOption {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithSteps supplies the step presentation overlay used for headings.
func WithSteps(steps *uischema.Store) RunnerOption {
	return func(r *Runner) {
		r.steps = steps
	}
}

// WithAdapter supplies the outbound-call adapter used on the connection and
// review steps.
func WithAdapter(adapter *handoff.Adapter) RunnerOption {
	return func(r *Runner) {
		r.adapter = adapter
	}
}

// NewRunner builds a Runner with the survey driver unless overridden.
func NewRunner(options ...RunnerOption) *Runner {
	r := &Runner{driver: NewSurveyDriver()}
	for _, option := range options {
		if option != nil {
			option(r)
		}
	}
	return r
}

// Run walks the wizard from its current step to completion. Aborting a prompt
// returns ErrAborted with the record preserved on the wizard, so a caller can
// resume from wizard state later.
func (r *Runner) Run(ctx context.Context, wiz *wizard.Wizard) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := wiz.Step()
		if err := r.announceStep(ctx, wiz); err != nil {
			return err
		}

		for _, field := range wiz.Fields() {
			if field.Locked {
				continue
			}
			if err := r.promptField(ctx, wiz, field); err != nil {
				return err
			}
		}

		if step == wiz.TotalSteps() {
			return r.review(ctx, wiz)
		}
		if r.connectStepFor(wiz) == step {
			if err := r.connect(ctx, wiz); err != nil {
				return err
			}
		}
		wiz.Next()
	}
}

func (r *Runner) announceStep(ctx context.Context, wiz *wizard.Wizard) error {
	step := wiz.Step()
	title := fmt.Sprintf("Step %d", step)
	description := ""
	if r.steps != nil {
		if cfg, ok := r.steps.Step(step); ok {
			if cfg.Title != "" {
				title = cfg.Title
			}
			description = cfg.Description
		}
	}

	heading := fmt.Sprintf("\n%s (step %d of %d)", title, step, wiz.TotalSteps())
	if err := r.driver.Info(ctx, heading); err != nil {
		return err
	}
	if description != "" {
		return r.driver.Info(ctx, description)
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, wiz *wizard.Wizard, field pkgmodel.Field) error {
	if len(field.Options) > 0 {
		return r.promptChoice(ctx, wiz, field)
	}

	message := field.Label
	if !field.Required {
		message += " (optional)"
	}
	value, err := r.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   wiz.Get(field.Name),
		Help:      field.Description,
		Validator: fieldValidator(field),
	})
	if err != nil {
		return err
	}
	if _, err := wiz.Set(field.Name, value); err != nil {
		return fmt.Errorf("tui: store %s: %w", field.Name, err)
	}
	return nil
}

func (r *Runner) promptChoice(ctx context.Context, wiz *wizard.Wizard, field pkgmodel.Field) error {
	labels := make([]string, len(field.Options))
	descriptions := make([]string, len(field.Options))
	defaultIndex := 0
	current := wiz.Get(field.Name)
	for i, option := range field.Options {
		labels[i] = option.Label
		descriptions[i] = option.Description
		if option.Value == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		Descriptions: descriptions,
		DefaultIndex: defaultIndex,
		Help:         field.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("tui: %s: selection out of range", field.Name)
	}
	if _, err := wiz.Set(field.Name, field.Options[idx].Value); err != nil {
		return fmt.Errorf("tui: store %s: %w", field.Name, err)
	}
	return nil
}

func (r *Runner) connect(ctx context.Context, wiz *wizard.Wizard) error {
	if wiz.Get("paymentAccountId") != "" {
		return r.driver.Info(ctx, "Payment account already connected: "+wiz.Get("paymentAccountId"))
	}
	if r.adapter == nil {
		return r.driver.Info(ctx, "Payment connection is not configured; skipping.")
	}

	proceed, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Create a payment account now?",
		Default: true,
		Help:    "A hosted onboarding link is generated; open it in a browser to finish the payment setup.",
	})
	if err != nil {
		return err
	}
	if !proceed {
		return r.driver.Info(ctx, "Skipped payment connection. You can reconnect later from the same step.")
	}

	link, err := r.adapter.Connect(ctx, wiz)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := r.driver.Info(ctx, "Finish your payment setup in a browser:"); err != nil {
		return err
	}
	return r.driver.Info(ctx, "  "+link)
}

func (r *Runner) review(ctx context.Context, wiz *wizard.Wizard) error {
	if err := r.driver.Info(ctx, "Review your answers:"); err != nil {
		return err
	}
	for _, field := range wiz.Form().Fields {
		value := wiz.Get(field.Name)
		if strings.TrimSpace(value) == "" {
			continue
		}
		if len(field.Options) > 0 {
			value = optionLabel(field, value)
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", field.Label, value)); err != nil {
			return err
		}
	}

	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Submit your registration?",
		Default: true,
	})
	if err != nil {
		return err
	}
	if !confirmed {
		return r.driver.Info(ctx, "Submission cancelled. Your answers are kept.")
	}
	if r.adapter == nil {
		return r.driver.Info(ctx, "Submission is not configured; nothing was sent.")
	}

	if err := r.adapter.Submit(ctx, wiz); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return r.driver.Info(ctx, "Onboarding complete. Welcome aboard!")
}

// connectStepFor finds the step that carries the connection marker, the
// locked payment-account field. Falls back to -1 when the form has none.
func (r *Runner) connectStepFor(wiz *wizard.Wizard) int {
	if field, ok := wiz.Form().Field("paymentAccountId"); ok {
		return field.Step
	}
	return -1
}

// fieldValidator builds the per-prompt validator: required fields reject
// blanks, and phone fields must format to a complete number.
func fieldValidator(field pkgmodel.Field) func(string) error {
	isPhone := field.IsPhone()
	required := field.Required
	if !required && !isPhone {
		return nil
	}
	label := field.Label
	return func(value string) error {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			if required {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
		if isPhone && !wizard.ValidPhone(wizard.FormatPhone("", trimmed)) {
			return fmt.Errorf("%s must have 10 digits, like (555) 123-4567", label)
		}
		return nil
	}
}

func optionLabel(field pkgmodel.Field, value string) string {
	for _, option := range field.Options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
