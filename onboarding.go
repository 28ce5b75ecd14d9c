// Package smartonboarding assembles the SMART onboarding wizard from its
// embedded schema: the OpenAPI document describing the registration record
// and the YAML overlay describing how its five steps are presented.
package smartonboarding

import (
	"context"
	"embed"
	"fmt"

	internalLoader "github.com/colossusofNero/smartonboarding/internal/openapi/loader"
	internalParser "github.com/colossusofNero/smartonboarding/internal/openapi/parser"
	"github.com/colossusofNero/smartonboarding/internal/uischema"
	pkgmodel "github.com/colossusofNero/smartonboarding/pkg/model"
	pkgopenapi "github.com/colossusofNero/smartonboarding/pkg/openapi"
	"github.com/colossusofNero/smartonboarding/pkg/wizard"
)

//go:embed schema/onboarding.json schema/steps.yaml
var schemaFS embed.FS

// OperationID names the single submission operation in the embedded schema.
const OperationID = "submitOnboarding"

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return internalParser.New(options)
}

// LoadFormModel builds the onboarding form model from the embedded schema.
func LoadFormModel(ctx context.Context) (pkgmodel.FormModel, error) {
	loader := NewLoader(pkgopenapi.WithFileSystem(schemaFS))
	doc, err := loader.Load(ctx, pkgopenapi.SourceFromFS("schema/onboarding.json"))
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("smartonboarding: load schema: %w", err)
	}

	parser := NewParser(pkgopenapi.ParserOptions{ResolveReferences: true})
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("smartonboarding: parse schema: %w", err)
	}
	op, ok := operations[OperationID]
	if !ok {
		return pkgmodel.FormModel{}, fmt.Errorf("smartonboarding: schema is missing operation %q", OperationID)
	}

	form, err := pkgmodel.NewBuilder().Build(op)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("smartonboarding: build form model: %w", err)
	}
	return form, nil
}

// LoadSteps parses the embedded step presentation overlay.
func LoadSteps() (*uischema.Store, error) {
	data, err := schemaFS.ReadFile("schema/steps.yaml")
	if err != nil {
		return nil, fmt.Errorf("smartonboarding: read steps overlay: %w", err)
	}
	steps, err := uischema.Load(data)
	if err != nil {
		return nil, fmt.Errorf("smartonboarding: %w", err)
	}
	return steps, nil
}

// NewWizard builds a fresh wizard over the embedded schema, with the step
// count taken from the presentation overlay so trailing field-less steps
// (payment connection, review) are included.
func NewWizard(ctx context.Context) (*wizard.Wizard, error) {
	form, err := LoadFormModel(ctx)
	if err != nil {
		return nil, err
	}
	steps, err := LoadSteps()
	if err != nil {
		return nil, err
	}

	total := form.TotalSteps()
	if n := len(steps.Steps()); n > total {
		total = n
	}
	return wizard.New(form, wizard.WithTotalSteps(total)), nil
}
