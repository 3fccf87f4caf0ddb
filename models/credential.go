package models

import "time"

// PasswordHistoryEntry is one link of a user's append-only password audit
// trail. Entries are created on every successful password change (including
// the initial seed), never mutated, never deleted. Only the most recent
// entries (see service configuration, default 3) are consulted when a new
// password is validated against reuse.
type PasswordHistoryEntry struct {
	EntryID      int64     `json:"-"`
	UserID       int64     `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the PasswordHistoryEntry model.
func (e PasswordHistoryEntry) TableName() string {
	return "password_history"
}

// RefreshToken is the persisted half of a refresh credential. The client
// holds a signed JWT whose "jti" claim equals TokenID; presenting it is only
// valid while the row is unrevoked and unexpired. Once revoked a token is
// never un-revoked, and every token a user holds is revoked atomically
// whenever that user's password changes.
type RefreshToken struct {
	TokenID   string     `json:"-"`
	UserID    int64      `json:"-"`
	Revoked   bool       `json:"-"`
	RevokedAt *time.Time `json:"-"`
	ExpiresAt time.Time  `json:"-"`
	CreatedAt time.Time  `json:"-"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// PasswordResetToken is a single-use, time-limited credential-recovery
// artifact. The raw token value is emailed to the user and only its SHA-256
// digest is stored. At most one active (unused, unexpired, unsuperseded)
// token exists per user: issuing a new one marks any prior unused token used.
type PasswordResetToken struct {
	TokenID   int64      `json:"-"`
	UserID    int64      `json:"-"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"-"`
	Used      bool       `json:"-"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `json:"-"`
}

// TableName returns the name of the database table
// associated with the PasswordResetToken model.
func (t PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
