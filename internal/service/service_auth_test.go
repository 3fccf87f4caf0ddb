package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "medward"
)

func newRawAuthService(users store.UserRepository, credentials store.CredentialRepository) *authService {
	return &authService{
		userRepository:       users,
		credentialRepository: credentials,
		tokenSignKey:         testSignKey,
		tokenIssuer:          testIssuer,
		accessTokenDuration:  15 * time.Minute,
		refreshTokenDuration: 30 * 24 * time.Hour,
		logger:               logger.Nop(),
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "Sup3r$ecret")

	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			assert.Equal(t, "jdoe", username)
			return models.User{UserID: 42, HospitalID: 5, Username: "jdoe", PasswordHash: hash}, nil
		},
	}
	var inserted models.RefreshToken
	credentials := &mockCredentialRepository{
		insertRefreshTokenFn: func(_ context.Context, token models.RefreshToken) error {
			inserted = token
			return nil
		},
	}

	svc := newRawAuthService(users, credentials)

	pair, foundUser, err := svc.Login(ctx, "jdoe", "Sup3r$ecret")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(42), foundUser.UserID)
	assert.Equal(t, int64(42), inserted.UserID)
	assert.NotEmpty(t, inserted.TokenID)
	assert.True(t, inserted.ExpiresAt.After(time.Now()))
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	svc := newRawAuthService(users, &mockCredentialRepository{})

	_, _, err := svc.Login(ctx, "ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "Sup3r$ecret")
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{UserID: 42, PasswordHash: hash}, nil
		},
	}

	svc := newRawAuthService(users, &mockCredentialRepository{})

	_, _, err := svc.Login(ctx, "jdoe", "not-the-password")

	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := newRawAuthService(&mockUserRepository{}, &mockCredentialRepository{})

	_, _, err := svc.Login(context.Background(), "", "")

	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_StorageError(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, errStorage
		},
	}

	svc := newRawAuthService(users, &mockCredentialRepository{})

	_, _, err := svc.Login(ctx, "jdoe", "Sup3r$ecret")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredential)
	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	ctx := context.Background()
	token, err := utils.GenerateJWTToken(testIssuer, 42, "", 15*time.Minute, testSignKey)
	require.NoError(t, err)

	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, int64(42), userID)
			return models.User{
				UserID:             42,
				HospitalID:         5,
				Roles:              models.Roles{models.RoleDoctor},
				MustChangePassword: true,
			}, nil
		},
	}

	svc := newRawAuthService(users, &mockCredentialRepository{})

	identity, err := svc.Authenticate(ctx, token.SignedString)

	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, int64(5), identity.HospitalID)
	assert.True(t, identity.Roles.Has(models.RoleDoctor))
	assert.True(t, identity.MustChangePassword)
}

func TestAuthenticate_BadToken(t *testing.T) {
	svc := newRawAuthService(&mockUserRepository{}, &mockCredentialRepository{})

	_, err := svc.Authenticate(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	// a valid token whose subject was deleted after issuance
	token, err := utils.GenerateJWTToken(testIssuer, 42, "", 15*time.Minute, testSignKey)
	require.NoError(t, err)

	users := &mockUserRepository{
		findUserByIDFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	svc := newRawAuthService(users, &mockCredentialRepository{})

	_, err = svc.Authenticate(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// ─────────────────────────────────────────────
// Refresh
// ─────────────────────────────────────────────

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	var revokedID string
	var inserted models.RefreshToken
	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, tokenID string) (models.RefreshToken, error) {
			assert.Equal(t, "token-1", tokenID)
			return models.RefreshToken{TokenID: "token-1", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		revokeRefreshTokenFn: func(_ context.Context, tokenID string) error {
			revokedID = tokenID
			return nil
		},
		insertRefreshTokenFn: func(_ context.Context, token models.RefreshToken) error {
			inserted = token
			return nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	pair, err := svc.Refresh(ctx, refresh.SignedString)

	require.NoError(t, err)
	assert.Equal(t, "token-1", revokedID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, "token-1", inserted.TokenID)
	assert.Equal(t, int64(7), inserted.UserID)
}

func TestRefresh_RevokedToken(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{TokenID: "token-1", UserID: 7, Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	_, err = svc.Refresh(context.Background(), refresh.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefresh_ExpiredRow(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{TokenID: "token-1", UserID: 7, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	_, err = svc.Refresh(context.Background(), refresh.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefresh_UserMismatch(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{TokenID: "token-1", UserID: 99, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	_, err = svc.Refresh(context.Background(), refresh.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefresh_UnknownToken(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{}, store.ErrRefreshTokenNotFound
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	_, err = svc.Refresh(context.Background(), refresh.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefresh_AccessTokenPresented(t *testing.T) {
	// an access token carries no jti and can never refresh a session
	access, err := utils.GenerateJWTToken(testIssuer, 7, "", 15*time.Minute, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			t.Fatal("lookup must not happen for a token without jti")
			return models.RefreshToken{}, nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	_, err = svc.Refresh(context.Background(), access.SignedString)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestLogout_Success(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	var revokedID string
	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{TokenID: "token-1", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		revokeRefreshTokenFn: func(_ context.Context, tokenID string) error {
			revokedID = tokenID
			return nil
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	err = svc.Logout(context.Background(), refresh.SignedString)

	require.NoError(t, err)
	assert.Equal(t, "token-1", revokedID)
}

func TestLogout_BadToken(t *testing.T) {
	svc := newRawAuthService(&mockUserRepository{}, &mockCredentialRepository{})

	err := svc.Logout(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_RevocationFailure(t *testing.T) {
	refresh, err := utils.GenerateJWTToken(testIssuer, 7, "token-1", time.Hour, testSignKey)
	require.NoError(t, err)

	credentials := &mockCredentialRepository{
		findRefreshTokenFn: func(_ context.Context, _ string) (models.RefreshToken, error) {
			return models.RefreshToken{TokenID: "token-1", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		revokeRefreshTokenFn: func(_ context.Context, _ string) error {
			return errStorage
		},
	}

	svc := newRawAuthService(&mockUserRepository{}, credentials)

	err = svc.Logout(context.Background(), refresh.SignedString)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errStorage))
}
