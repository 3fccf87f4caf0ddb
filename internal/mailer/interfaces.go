// Package mailer delivers transactional email through an HTTP mail relay.
package mailer

import "context"

// Notifier sends transactional email to staff members. Implementations must
// be safe for concurrent use.
type Notifier interface {
	// SendPasswordResetEmail delivers the raw reset token to the account's
	// email address.
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error

	// SendWelcomeEmail delivers initial credentials to a newly onboarded
	// staff member.
	SendWelcomeEmail(ctx context.Context, toEmail, toName, username, tempPassword string) error
}
