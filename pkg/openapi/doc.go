// Package openapi defines the document, operation, and schema wrappers the
// onboarding form model is built from, decoupled from the kin-openapi types
// used by the internal parser.
package openapi
