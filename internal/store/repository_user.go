package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" and
// "user_roles" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and its role set in one transaction and
// returns the fully populated [models.User] with server-assigned fields
// (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDuplicateUser].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createUser,
		nullableID(user.HospitalID), user.Username, user.Email,
		user.FirstName, user.LastName, user.PasswordHash, user.MustChangePassword)
	if err := row.Scan(&user.UserID, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrDuplicateUser
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	for _, role := range user.Roles {
		if _, err := tx.ExecContext(ctx, insertUserRole, user.UserID, string(role)); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user role")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

// FindUserByID retrieves a user record and its roles by primary key.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

// FindUserByUsername retrieves a user record and its roles by login
// identifier. Returns [ErrNoUserWasFound] for an empty result set.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, findUserByUsername, username)
}

// FindUserByEmail retrieves a user record and its roles by email address.
// Returns [ErrNoUserWasFound] for an empty result set.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		foundUser  models.User
		hospitalID sql.NullInt64
	)
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&foundUser.UserID, &hospitalID, &foundUser.Username, &foundUser.Email,
		&foundUser.FirstName, &foundUser.LastName, &foundUser.PasswordHash,
		&foundUser.MustChangePassword, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	foundUser.HospitalID = hospitalID.Int64

	roles, err := r.loadRoles(ctx, foundUser.UserID)
	if err != nil {
		return models.User{}, err
	}
	foundUser.Roles = roles

	return foundUser, nil
}

// ListUsersByHospital returns a page of accounts belonging to the tenant,
// plus the total tenant-scoped row count. Search matches username, email,
// first and last name case-insensitively.
func (r *userRepository) ListUsersByHospital(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.User, int64, error) {
	log := logger.FromContext(ctx)
	q = q.Normalize()

	base := sq.Select().
		From("users").
		Where(sq.Eq{"hospital_id": hospitalID}).
		PlaceholderFormat(sq.Dollar)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"username": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
		})
	}

	total, err := r.countRows(ctx, base)
	if err != nil {
		return nil, 0, err
	}

	sortColumn := "created_at"
	if q.SortBy == "username" || q.SortBy == "email" || q.SortBy == "last_name" {
		sortColumn = q.SortBy
	}

	query, args, err := base.
		Columns(userColumns).
		OrderBy(sortColumn + " " + q.SortDir).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsersByHospital").Msg("error: executing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	var ids []int64
	for rows.Next() {
		var (
			u     models.User
			hawID sql.NullInt64
		)
		if err := rows.Scan(&u.UserID, &hawID, &u.Username, &u.Email, &u.FirstName,
			&u.LastName, &u.PasswordHash, &u.MustChangePassword, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		u.HospitalID = hawID.Int64
		users = append(users, u)
		ids = append(ids, u.UserID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(ids) > 0 {
		rolesByUser, err := r.loadRolesBatch(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range users {
			users[i].Roles = rolesByUser[users[i].UserID]
		}
	}

	return users, total, nil
}

func (r *userRepository) loadRoles(ctx context.Context, userID int64) (models.Roles, error) {
	rows, err := r.db.QueryContext(ctx, findRolesByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var roles models.Roles
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		roles = append(roles, models.Role(role))
	}
	return roles, rows.Err()
}

func (r *userRepository) loadRolesBatch(ctx context.Context, userIDs []int64) (map[int64]models.Roles, error) {
	rows, err := r.db.QueryContext(ctx, findRolesByUsers, userIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	byUser := make(map[int64]models.Roles, len(userIDs))
	for rows.Next() {
		var (
			userID int64
			role   string
		)
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		byUser[userID] = append(byUser[userID], models.Role(role))
	}
	return byUser, rows.Err()
}

func (r *userRepository) countRows(ctx context.Context, base sq.SelectBuilder) (int64, error) {
	query, args, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return total, nil
}

// nullableID converts a zero tenant ID (the tenant-less SUPER_ADMIN case)
// into SQL NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
