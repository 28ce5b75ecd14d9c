// Package handoff encapsulates the wizard's two outbound operations: the
// payment-provider account connection that ends in a full-page redirect, and
// the final persistence of the completed registration. Both run behind the
// wizard's busy latches and are independently failable; a failed call never
// mutates the record.
package handoff
