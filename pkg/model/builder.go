package model

import (
	"github.com/colossusofNero/smartonboarding/internal/model"
	pkgopenapi "github.com/colossusofNero/smartonboarding/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder creates the canonical OpenAPI-to-form-model builder.
func NewBuilder(options ...BuilderOption) Builder {
	opts := builderOptions{}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}
	return model.New(model.Options{Labeler: opts.labeler})
}
