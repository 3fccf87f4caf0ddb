package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
)

// relayNotifier implements Notifier against a JSON HTTP mail relay.
type relayNotifier struct {
	client *resty.Client
	from   string
	logger *logger.Logger
}

// relayMessage is the request body accepted by the relay's /v1/send endpoint.
type relayMessage struct {
	From     string `json:"from"`
	To       string `json:"to"`
	ToName   string `json:"to_name,omitempty"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
}

// NewRelayNotifier constructs a Notifier that posts messages to the relay
// configured in cfg.
func NewRelayNotifier(cfg config.Mailer, logger *logger.Logger) Notifier {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RelayURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetAuthToken(cfg.APIKey)

	return &relayNotifier{
		client: cli,
		from:   cfg.FromAddress,
		logger: logger,
	}
}

// SendPasswordResetEmail delivers the raw reset token. The token itself is
// never logged.
func (n *relayNotifier) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"A password reset was requested for your account. Use the token below "+
			"to set a new password. It expires in one hour and can be used once.\n\n"+
			"    %s\n\n"+
			"If you did not request a reset, you can ignore this message.\n",
		toName, resetToken)

	return n.send(ctx, relayMessage{
		From:     n.from,
		To:       toEmail,
		ToName:   toName,
		Subject:  "Password reset",
		TextBody: body,
	})
}

// SendWelcomeEmail delivers initial credentials to a newly onboarded staff
// member. The temporary password must be changed on first login.
func (n *relayNotifier) SendWelcomeEmail(ctx context.Context, toEmail, toName, username, tempPassword string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"An account has been created for you.\n\n"+
			"    Username: %s\n"+
			"    Temporary password: %s\n\n"+
			"You will be asked to choose a new password on first login.\n",
		toName, username, tempPassword)

	return n.send(ctx, relayMessage{
		From:     n.from,
		To:       toEmail,
		ToName:   toName,
		Subject:  "Your new account",
		TextBody: body,
	})
}

func (n *relayNotifier) send(ctx context.Context, msg relayMessage) error {
	log := logger.FromContext(ctx)

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/v1/send")
	if err != nil {
		log.Err(err).Str("to", msg.To).Msg("error sending email")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		log.Error().Str("to", msg.To).Int("status", resp.StatusCode()).Msg("mail relay rejected the message")
		return fmt.Errorf("%w: status %d", ErrRelayRejected, resp.StatusCode())
	}

	return nil
}
