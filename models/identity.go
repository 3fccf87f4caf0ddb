// SPDX-License-Identifier: Apache-2.0

package models

// Identity is the resolved caller of an authenticated request: the subject
// of a verified access token joined with the current user record. It is
// attached to the request context by the auth middleware and consumed by
// every downstream role and tenant check.
type Identity struct {
	UserID int64 `json:"user_id"`

	// HospitalID is the caller's tenant. Zero for SUPER_ADMIN.
	HospitalID int64 `json:"hospital_id,omitempty"`

	Roles Roles `json:"roles"`

	// MustChangePassword mirrors the live user flag; while set, every
	// protected action except the password-change endpoints is rejected.
	MustChangePassword bool `json:"must_change_password"`
}
