// SPDX-License-Identifier: Apache-2.0

package mailer

import "errors"

var (
	ErrSendingEmail  = errors.New("error sending email")
	ErrRelayRejected = errors.New("mail relay rejected the message")
)
