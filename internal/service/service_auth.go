package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against bcrypt hashes and manages the JWT token
// lifecycle: short-lived access tokens and persisted, revocable refresh
// tokens (the JWT "jti" claim keys the database row).
type authService struct {
	userRepository       store.UserRepository
	credentialRepository store.CredentialRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, credentials store.CredentialRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       users,
		credentialRepository: credentials,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// Login authenticates a user by username and password and issues a token
// pair. An unknown username and a wrong password produce the same
// [ErrInvalidCredential], so the response does not reveal which part was
// wrong.
func (a *authService) Login(ctx context.Context, username, password string) (models.TokenPair, models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.TokenPair{}, models.User{}, ErrInvalidCredential
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, models.User{}, ErrInvalidCredential
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.TokenPair{}, models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, password) {
		log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.TokenPair{}, models.User{}, ErrInvalidCredential
	}

	pair, err := a.issueTokenPair(ctx, foundUser.UserID)
	if err != nil {
		return models.TokenPair{}, models.User{}, err
	}

	return pair, foundUser, nil
}

// Authenticate verifies an access token and resolves the caller's identity
// from the user store. Resolving per request (rather than trusting claims)
// keeps role revocations and administrative force-change effective
// immediately, not at next token refresh.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(accessToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Identity{}, ErrUnauthenticated
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Identity{}, ErrUnauthenticated
		}
		log.Err(err).Int64("id", token.UserID).Msg("identity resolution failed")
		return models.Identity{}, fmt.Errorf("identity resolution failed: %w", err)
	}

	return models.Identity{
		UserID:             foundUser.UserID,
		HospitalID:         foundUser.HospitalID,
		Roles:              foundUser.Roles,
		MustChangePassword: foundUser.MustChangePassword,
	}, nil
}

// Refresh rotates the presented refresh token: it is revoked and a new pair
// is issued. A token that is malformed, unknown, revoked, or expired is
// uniformly [ErrUnauthenticated], so a replayed token after rotation fails
// the same way as a forged one.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	stored, err := a.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := a.credentialRepository.RevokeRefreshToken(ctx, stored.TokenID); err != nil {
		log.Err(err).Msg("refresh token revocation failed")
		return models.TokenPair{}, fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return a.issueTokenPair(ctx, stored.UserID)
}

// Logout revokes the presented refresh token. Returns [ErrUnauthenticated]
// when the token is not a live refresh credential.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromContext(ctx)

	stored, err := a.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := a.credentialRepository.RevokeRefreshToken(ctx, stored.TokenID); err != nil {
		log.Err(err).Msg("refresh token revocation failed")
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return nil
}

// verifyRefreshToken checks signature, issuer, expiry, and the revocation
// state of the persisted row behind the "jti" claim.
func (a *authService) verifyRefreshToken(ctx context.Context, refreshToken string) (models.RefreshToken, error) {
	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil || token.RegisteredClaims.ID == "" {
		return models.RefreshToken{}, ErrUnauthenticated
	}

	stored, err := a.credentialRepository.FindRefreshToken(ctx, token.RegisteredClaims.ID)
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			return models.RefreshToken{}, ErrUnauthenticated
		}
		return models.RefreshToken{}, fmt.Errorf("refresh token lookup failed: %w", err)
	}

	if stored.Revoked || stored.UserID != token.UserID || time.Now().After(stored.ExpiresAt) {
		return models.RefreshToken{}, ErrUnauthenticated
	}

	return stored, nil
}

// issueTokenPair creates an access token and a persisted refresh token for
// the user.
func (a *authService) issueTokenPair(ctx context.Context, userID int64) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	access, err := utils.GenerateJWTToken(a.tokenIssuer, userID, "", a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("access token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	tokenID := uuid.NewString()
	refresh, err := utils.GenerateJWTToken(a.tokenIssuer, userID, tokenID, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("refresh token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	err = a.credentialRepository.InsertRefreshToken(ctx, models.RefreshToken{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: refresh.RegisteredClaims.ExpiresAt.Time,
	})
	if err != nil {
		log.Err(err).Msg("refresh token persistence failed")
		return models.TokenPair{}, fmt.Errorf("refresh token persistence failed: %w", err)
	}

	return models.TokenPair{
		AccessToken:  access.SignedString,
		RefreshToken: refresh.SignedString,
	}, nil
}
