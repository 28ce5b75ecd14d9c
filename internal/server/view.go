package server

import (
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/colossusofNero/smartonboarding/internal/uischema"
	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

var (
	reviewPolicyOnce sync.Once
	reviewPolicy     *bluemonday.Policy
)

// reviewSanitizer strips any markup from user-entered values before they
// are echoed back on the review screen.
func reviewSanitizer() *bluemonday.Policy {
	reviewPolicyOnce.Do(func() {
		reviewPolicy = bluemonday.StrictPolicy()
	})
	return reviewPolicy
}

func sanitizeValue(raw string) string {
	return strings.TrimSpace(reviewSanitizer().Sanitize(raw))
}

type optionView struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Selected    bool   `json:"selected"`
}

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	Required    bool         `json:"required"`
	Locked      bool         `json:"locked"`
	Phone       bool         `json:"phone"`
	Options     []optionView `json:"options,omitempty"`
}

type reviewRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type pageContext struct {
	Step        int         `json:"step"`
	TotalSteps  int         `json:"totalSteps"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	NextLabel   string      `json:"nextLabel"`
	Fields      []fieldView `json:"fields"`
	Review      []reviewRow `json:"review,omitempty"`
	Error       string      `json:"error,omitempty"`
	Connecting  bool        `json:"connecting"`
	Submitting  bool        `json:"submitting"`
	Connected   bool        `json:"connected"`
	ConnectStep bool        `json:"connectStep"`
	ReviewStep  bool        `json:"reviewStep"`
	ThemeStyle  string      `json:"themeStyle,omitempty"`
}

func (s *Server) pageFor(w *wizard.Wizard, errMsg string) pageContext {
	step := w.Step()
	page := pageContext{
		Step:        step,
		TotalSteps:  w.TotalSteps(),
		Title:       "Step " + strconv.Itoa(step),
		NextLabel:   "Next",
		Error:       errMsg,
		Connecting:  w.Connecting(),
		Submitting:  w.Submitting(),
		Connected:   w.Get("paymentAccountId") != "",
		ConnectStep: step == 3,
		ReviewStep:  step == w.TotalSteps(),
		ThemeStyle:  s.themeStyle,
	}

	if cfg, ok := s.steps.Step(step); ok {
		applyStepConfig(&page, cfg)
	}

	for _, field := range w.Form().FieldsForStep(step) {
		page.Fields = append(page.Fields, fieldViewFor(field, w.Get(field.Name)))
	}
	if page.ReviewStep {
		page.Review = reviewRows(w)
	}
	return page
}

func applyStepConfig(page *pageContext, cfg uischema.StepConfig) {
	if cfg.Title != "" {
		page.Title = cfg.Title
	}
	if cfg.Description != "" {
		page.Description = cfg.Description
	}
	if cfg.NextLabel != "" {
		page.NextLabel = cfg.NextLabel
	}
}

func fieldViewFor(field pkgmodel.Field, value string) fieldView {
	view := fieldView{
		Name:        field.Name,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Value:       value,
		Required:    field.Required,
		Locked:      field.Locked,
		Phone:       field.IsPhone(),
	}
	for _, option := range field.Options {
		view.Options = append(view.Options, optionView{
			Value:       option.Value,
			Label:       option.Label,
			Description: option.Description,
			Selected:    option.Value == value,
		})
	}
	return view
}

// reviewRows lists every filled field in form order with values passed
// through the strict sanitizer.
func reviewRows(w *wizard.Wizard) []reviewRow {
	var rows []reviewRow
	for _, field := range w.Form().Fields {
		value := sanitizeValue(w.Get(field.Name))
		if value == "" {
			continue
		}
		for _, option := range field.Options {
			if option.Value == value {
				value = option.Label
				break
			}
		}
		rows = append(rows, reviewRow{Label: field.Label, Value: value})
	}
	return rows
}
