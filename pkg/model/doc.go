// Package model defines the typed form model consumed by the wizard and the
// renderers. Builders reside in internal/model but return the types defined
// here. Fields carry their wizard step assignment, an ordered position within
// the step, and validation rules with string parameters so both the HTML and
// prompt front-ends can map constraints onto their native mechanisms. Schema
// extensions under the `x-onboarding` namespace flow into field attributes
// (step, order, placeholder, locked, option labels) during the build.
package model
