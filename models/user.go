package models

import "time"

// User represents a staff or administrative account used for authentication
// and authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// HospitalID is the tenant the user belongs to. It is zero only for
	// SUPER_ADMIN accounts, which are tenant-less. A non-super-admin
	// user's hospital never changes after creation.
	HospitalID int64 `json:"hospital_id,omitempty"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the unique contact address, also used for password reset.
	Email string `json:"email"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash is the bcrypt hash of the current password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Roles is the set of capability roles held by the user.
	Roles Roles `json:"roles"`

	// MustChangePassword forces credential rotation before any further
	// access. Set on account creation and by administrative force-change;
	// cleared only by a successful password change.
	MustChangePassword bool `json:"must_change_password"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsSuperAdmin reports whether the account is the tenant-less platform role.
func (u User) IsSuperAdmin() bool {
	return u.Roles.Has(RoleSuperAdmin)
}
