// SPDX-License-Identifier: Apache-2.0

package service

import "errors"

// Transport-independent error taxonomy. Services return these sentinels
// (possibly wrapped); the HTTP layer maps them to status codes and never
// leaks anything else.
var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("not found")
	ErrPolicyViolation       = errors.New("password does not satisfy the policy")
	ErrPasswordReused        = errors.New("password was used recently")
	ErrInvalidCredential     = errors.New("invalid credential")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInvalidState          = errors.New("invalid resource state")
	ErrConflict              = errors.New("conflict")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrPasswordChangeRequired rejects protected actions while the
	// caller's must-change flag is set.
	ErrPasswordChangeRequired = errors.New("password change required")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
