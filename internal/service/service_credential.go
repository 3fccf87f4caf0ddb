package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/mailer"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/internal/validators"
	"github.com/medward/medward/models"
)

// credentialService is the concrete implementation of CredentialService.
//
// Every state-changing operation delegates its mutations to a single
// repository transaction, so a password change either fully lands (new hash,
// history entry, cleared flag, revoked sessions) or not at all.
type credentialService struct {
	userRepository       store.UserRepository
	credentialRepository store.CredentialRepository
	passwordValidator    validators.Validator
	notifier             mailer.Notifier

	resetTokenDuration   time.Duration
	passwordHistoryDepth int

	logger *logger.Logger
}

// NewCredentialService constructs a CredentialService wired to the given
// repositories, password validator, and mail notifier.
func NewCredentialService(
	users store.UserRepository,
	credentials store.CredentialRepository,
	passwordValidator validators.Validator,
	notifier mailer.Notifier,
	cfg config.App,
	logger *logger.Logger,
) CredentialService {
	return &credentialService{
		userRepository:       users,
		credentialRepository: credentials,
		passwordValidator:    passwordValidator,
		notifier:             notifier,
		resetTokenDuration:   cfg.ResetTokenDuration,
		passwordHistoryDepth: cfg.PasswordHistoryDepth,
		logger:               logger,
	}
}

// ChangePassword rotates the caller's own password.
//
// Order of checks: current-password match, then policy, then reuse. A failed
// check leaves all state untouched. Success commits the atomic unit and
// clears the must-change flag; every refresh token the user holds is revoked
// in the same transaction.
func (c *credentialService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	foundUser, err := c.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, oldPassword) {
		log.Warn().Int64("id", userID).Msg("current password mismatch")
		return ErrInvalidCredential
	}

	newHash, err := c.vetAndHashNewPassword(ctx, foundUser, newPassword)
	if err != nil {
		return err
	}

	if err := c.credentialRepository.ApplyPasswordChange(ctx, userID, newHash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password change failed")
		return fmt.Errorf("password change failed: %w", err)
	}

	return nil
}

// ForcePasswordChange flags a same-tenant account for mandatory rotation and
// revokes its sessions. A target in another tenant (or none at all) is
// reported as [ErrNotFound]; the caller cannot distinguish the two cases.
func (c *credentialService) ForcePasswordChange(ctx context.Context, actor models.Identity, targetUserID int64) error {
	log := logger.FromContext(ctx)

	target, err := c.userRepository.FindUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrNotFound
		}
		log.Err(err).Int64("id", targetUserID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if target.HospitalID != actor.HospitalID {
		return ErrNotFound
	}

	if err := c.credentialRepository.ForcePasswordChange(ctx, targetUserID); err != nil {
		log.Err(err).Int64("id", targetUserID).Msg("force password change failed")
		return fmt.Errorf("force password change failed: %w", err)
	}

	log.Info().Int64("actor", actor.UserID).Int64("target", targetUserID).Msg("password change forced")
	return nil
}

// RequestPasswordReset issues a single-use reset token for the account
// behind email. The reply is uniform whether or not the address is
// registered, so the endpoint cannot be used to enumerate accounts. Issuing
// supersedes any prior unused token. Mail delivery failure is logged but not
// surfaced; the token is already committed and a retry issues a fresh one.
func (c *credentialService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	foundUser, err := c.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Msg("password reset requested for unknown email")
			return nil
		}
		log.Err(err).Msg("user lookup by email failed")
		return fmt.Errorf("user lookup by email failed: %w", err)
	}

	rawToken := uuid.NewString()
	_, err = c.credentialRepository.CreateResetToken(ctx, models.PasswordResetToken{
		UserID:    foundUser.UserID,
		TokenHash: utils.HashResetToken(rawToken),
		ExpiresAt: time.Now().Add(c.resetTokenDuration),
	})
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("reset token creation failed")
		return fmt.Errorf("reset token creation failed: %w", err)
	}

	name := foundUser.FirstName + " " + foundUser.LastName
	if err := c.notifier.SendPasswordResetEmail(ctx, foundUser.Email, name, rawToken); err != nil {
		log.Warn().Err(err).Int64("id", foundUser.UserID).Msg("reset email delivery failed")
	}

	return nil
}

// ResetPasswordWithToken consumes a reset token and applies the new
// password. Expiry is checked lazily at consumption time; there is no
// background sweep of expired tokens.
func (c *credentialService) ResetPasswordWithToken(ctx context.Context, rawToken, newPassword string) error {
	log := logger.FromContext(ctx)

	token, err := c.credentialRepository.FindResetTokenByHash(ctx, utils.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrResetTokenNotFound) {
			return ErrInvalidOrExpiredToken
		}
		log.Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset token lookup failed: %w", err)
	}

	if token.Used || time.Now().After(token.ExpiresAt) {
		return ErrInvalidOrExpiredToken
	}

	foundUser, err := c.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		log.Err(err).Int64("id", token.UserID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	newHash, err := c.vetAndHashNewPassword(ctx, foundUser, newPassword)
	if err != nil {
		return err
	}

	if err := c.credentialRepository.ApplyPasswordReset(ctx, token.TokenID, token.UserID, newHash); err != nil {
		log.Err(err).Int64("id", token.UserID).Msg("password reset failed")
		return fmt.Errorf("password reset failed: %w", err)
	}

	return nil
}

// vetAndHashNewPassword runs the policy and reuse checks for a candidate
// password and returns its bcrypt hash. Reuse is checked against the current
// hash and the most recent history entries (the configured depth); older
// passwords may be reused.
func (c *credentialService) vetAndHashNewPassword(ctx context.Context, user models.User, newPassword string) (string, error) {
	log := logger.FromContext(ctx)

	if err := c.passwordValidator.Validate(ctx, newPassword); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPolicyViolation, err)
	}

	if utils.CheckPassword(user.PasswordHash, newPassword) {
		return "", ErrPasswordReused
	}

	history, err := c.credentialRepository.RecentPasswordHistory(ctx, user.UserID, c.passwordHistoryDepth)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("password history lookup failed")
		return "", fmt.Errorf("password history lookup failed: %w", err)
	}
	for _, entry := range history {
		if utils.CheckPassword(entry.PasswordHash, newPassword) {
			return "", ErrPasswordReused
		}
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("password hashing failed")
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return newHash, nil
}
