// Package wizard implements the five-step onboarding state machine: a
// clamped step index over a schema-derived form model, a shared mutable
// record, progressive phone formatting, aggregate validation, and the two
// busy latches that guard the external connect and submit operations.
//
// The wizard deliberately does not gate intermediate step transitions on
// validation; only the final submission validates the full record. Step
// position survives the payment-provider redirect through Resume, which
// reads the step indicator carried on the return URL.
package wizard
