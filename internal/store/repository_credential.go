package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/models"
)

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository]. The password-lifecycle mutations it exposes are
// single transactions: a partially applied change (new hash stored but old
// refresh tokens still valid) would be a correctness violation, so hash
// update, history append, token revocation, and reset-token consumption
// always commit together or not at all.
type credentialRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// RecentPasswordHistory returns the user's most recent password history
// entries, newest first. Older entries are retained in the table but not
// returned beyond limit.
func (r *credentialRepository) RecentPasswordHistory(ctx context.Context, userID int64, limit int) ([]models.PasswordHistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, recentPasswordHistory, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.RecentPasswordHistory").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.PasswordHistoryEntry
	for rows.Next() {
		var e models.PasswordHistoryEntry
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.PasswordHash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ApplyPasswordChange commits the atomic unit of a successful password
// change: store the new hash, clear the must-change flag, append a history
// entry, and revoke every live refresh token of the user.
func (r *credentialRepository) ApplyPasswordChange(ctx context.Context, userID int64, newHash string) error {
	return r.inTx(ctx, "ApplyPasswordChange", func(tx *sql.Tx) error {
		return applyPasswordChangeTx(ctx, tx, userID, newHash)
	})
}

// ApplyPasswordReset performs the same atomic unit as ApplyPasswordChange
// and additionally marks the consumed reset token used, in one transaction.
func (r *credentialRepository) ApplyPasswordReset(ctx context.Context, tokenID int64, userID int64, newHash string) error {
	return r.inTx(ctx, "ApplyPasswordReset", func(tx *sql.Tx) error {
		if err := applyPasswordChangeTx(ctx, tx, userID, newHash); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, markResetTokenUsed, tokenID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// ForcePasswordChange atomically raises the must-change flag and revokes
// every live refresh token of the target user, invalidating all existing
// sessions.
func (r *credentialRepository) ForcePasswordChange(ctx context.Context, userID int64) error {
	return r.inTx(ctx, "ForcePasswordChange", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, setMustChangePassword, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, revokeUserRefreshTokens, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// InsertRefreshToken persists a freshly issued refresh token row.
func (r *credentialRepository) InsertRefreshToken(ctx context.Context, token models.RefreshToken) error {
	if _, err := r.db.ExecContext(ctx, insertRefreshToken, token.TokenID, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// FindRefreshToken loads a refresh token row by its ID (the JWT "jti"
// claim). Returns [ErrRefreshTokenNotFound] when absent.
func (r *credentialRepository) FindRefreshToken(ctx context.Context, tokenID string) (models.RefreshToken, error) {
	var (
		token     models.RefreshToken
		revokedAt sql.NullTime
	)
	row := r.db.QueryRowContext(ctx, findRefreshToken, tokenID)
	if err := row.Scan(&token.TokenID, &token.UserID, &token.Revoked, &revokedAt, &token.ExpiresAt, &token.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrRefreshTokenNotFound
		}
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}
	return token, nil
}

// RevokeRefreshToken marks a single refresh token revoked. Idempotent: an
// already revoked token is left untouched, and revocation is never undone.
func (r *credentialRepository) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	if _, err := r.db.ExecContext(ctx, revokeRefreshToken, tokenID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// CreateResetToken supersedes any prior unused reset token of the user and
// inserts the new one in the same transaction, so at most one active reset
// token exists per user at any time.
func (r *credentialRepository) CreateResetToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error) {
	err := r.inTx(ctx, "CreateResetToken", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, supersedeResetTokens, token.UserID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		row := tx.QueryRowContext(ctx, insertResetToken, token.UserID, token.TokenHash, token.ExpiresAt)
		if err := row.Scan(&token.TokenID, &token.CreatedAt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		return models.PasswordResetToken{}, err
	}
	return token, nil
}

// FindResetTokenByHash loads a reset token row by the SHA-256 digest of the
// raw token value. Returns [ErrResetTokenNotFound] when absent.
func (r *credentialRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (models.PasswordResetToken, error) {
	var (
		token  models.PasswordResetToken
		usedAt sql.NullTime
	)
	row := r.db.QueryRowContext(ctx, findResetTokenByHash, tokenHash)
	if err := row.Scan(&token.TokenID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.Used, &usedAt, &token.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordResetToken{}, ErrResetTokenNotFound
		}
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if usedAt.Valid {
		token.UsedAt = &usedAt.Time
	}
	return token, nil
}

// DeleteStaleRefreshTokens removes revoked or expired refresh tokens created
// before the cutoff and returns the number of deleted rows.
func (r *credentialRepository) DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteStaleRefreshTokens, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return res.RowsAffected()
}

// applyPasswordChangeTx is the shared transactional body of
// ApplyPasswordChange and ApplyPasswordReset.
func applyPasswordChangeTx(ctx context.Context, tx *sql.Tx, userID int64, newHash string) error {
	if _, err := tx.ExecContext(ctx, updatePasswordHash, userID, newHash); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err := tx.ExecContext(ctx, insertPasswordHistory, userID, newHash); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err := tx.ExecContext(ctx, revokeUserRefreshTokens, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *credentialRepository) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository."+op).Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		log.Err(err).Str("func", "*credentialRepository."+op).Msg("error: transaction body failed")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*credentialRepository."+op).Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
