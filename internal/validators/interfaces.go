// SPDX-License-Identifier: Apache-2.0

// Package validators holds input validation that belongs to neither the
// transport nor the storage layer, so the same rules run regardless of how a
// value arrived.
package validators

import "context"

// Validator checks an arbitrary value. The optional trailing names restrict
// the check to specific fields; with none given, the whole value is
// validated. Violations are returned joined, so a caller sees every broken
// rule at once rather than the first.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
