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

// hospitalRepository is the PostgreSQL-backed implementation of
// [HospitalRepository].
type hospitalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHospitalRepository constructs a [HospitalRepository] backed by the
// provided database connection and logger.
func NewHospitalRepository(db *DB, logger *logger.Logger) HospitalRepository {
	logger.Debug().Msg("creating hospital repository")
	return &hospitalRepository{
		db:     db,
		logger: logger,
	}
}

// CreateHospital persists a new tenant and returns it with server-assigned
// fields. A unique_violation on the name maps to [ErrDuplicateHospital].
func (r *hospitalRepository) CreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createHospital, hospital.Name, hospital.Code, hospital.Address, hospital.Phone)
	if err := row.Scan(&hospital.HospitalID, &hospital.CreatedAt); err != nil {
		log.Err(err).Str("func", "*hospitalRepository.CreateHospital").Msg("error: inserting hospital")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Hospital{}, ErrDuplicateHospital
		default:
			return models.Hospital{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return hospital, nil
}

// FindHospitalByID loads a tenant by primary key. Returns
// [ErrHospitalNotFound] for an empty result set.
func (r *hospitalRepository) FindHospitalByID(ctx context.Context, hospitalID int64) (models.Hospital, error) {
	var hospital models.Hospital
	row := r.db.QueryRowContext(ctx, findHospitalByID, hospitalID)
	if err := row.Scan(&hospital.HospitalID, &hospital.Name, &hospital.Code, &hospital.Address, &hospital.Phone, &hospital.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hospital{}, ErrHospitalNotFound
		}
		return models.Hospital{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return hospital, nil
}

// ListHospitals returns a page of tenants plus the total row count. Search
// matches the hospital name and code case-insensitively.
func (r *hospitalRepository) ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error) {
	log := logger.FromContext(ctx)
	q = q.Normalize()

	base := sq.Select().
		From("hospitals").
		PlaceholderFormat(sq.Dollar)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"code": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	sortColumn := "created_at"
	if q.SortBy == "name" || q.SortBy == "code" {
		sortColumn = q.SortBy
	}

	query, args, err := base.
		Columns("hospital_id", "name", "code", "address", "phone", "created_at").
		OrderBy(sortColumn + " " + q.SortDir).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*hospitalRepository.ListHospitals").Msg("error: executing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var hospitals []models.Hospital
	for rows.Next() {
		var h models.Hospital
		if err := rows.Scan(&h.HospitalID, &h.Name, &h.Code, &h.Address, &h.Phone, &h.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return hospitals, total, nil
}
