package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/models"
)

// patientRepository is the PostgreSQL-backed implementation of
// [PatientRepository]. Every query carries the acting tenant as an equality
// filter; a row that exists under a different hospital is indistinguishable
// from an absent row at this layer.
type patientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPatientRepository constructs a [PatientRepository] backed by the
// provided database connection and logger.
func NewPatientRepository(db *DB, logger *logger.Logger) PatientRepository {
	logger.Debug().Msg("creating patient repository")
	return &patientRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePatient persists a new patient row and returns it with
// server-assigned fields (PatientID, CreatedAt).
func (r *patientRepository) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPatient,
		patient.HospitalID, patient.DisplayID, patient.FirstName, patient.LastName,
		patient.DateOfBirth, patient.Gender, patient.Phone, patient.Address, patient.PhotoURL)
	if err := row.Scan(&patient.PatientID, &patient.CreatedAt); err != nil {
		log.Err(err).Str("func", "*patientRepository.CreatePatient").Msg("error: inserting patient")
		return models.Patient{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return patient, nil
}

// FindPatient loads a single patient scoped to the tenant. Returns
// [ErrPatientNotFound] both when the row is absent and when it belongs to a
// different hospital.
func (r *patientRepository) FindPatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error) {
	row := r.db.QueryRowContext(ctx, findPatient, patientID, hospitalID)
	return scanPatient(row)
}

// ListPatients returns a page of tenant-scoped patients plus the total
// tenant-scoped row count. Search matches name, display ID, and phone
// case-insensitively; Status filters by admission state
// ("admitted"/"discharged").
func (r *patientRepository) ListPatients(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Patient, int64, error) {
	log := logger.FromContext(ctx)
	q = q.Normalize()

	base := sq.Select().
		From("patients").
		Where(sq.Eq{"hospital_id": hospitalID}).
		PlaceholderFormat(sq.Dollar)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"display_id": pattern},
			sq.ILike{"phone": pattern},
		})
	}

	switch q.Status {
	case "admitted":
		base = base.Where(sq.Eq{"is_discharged": false})
	case "discharged":
		base = base.Where(sq.Eq{"is_discharged": true})
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
	switch q.SortBy {
	case "last_name", "first_name", "display_id", "date_of_birth":
		sortColumn = q.SortBy
	}

	query, args, err := base.
		Columns(patientColumns).
		OrderBy(sortColumn + " " + q.SortDir).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*patientRepository.ListPatients").Msg("error: executing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return patients, total, nil
}

// UpdatePatient applies the non-nil fields of upd to a tenant-scoped patient
// row and returns the updated record. Returns [ErrPatientNotFound] on a
// tenant-scoped miss. An update with no populated fields reads and returns
// the current row.
func (r *patientRepository) UpdatePatient(ctx context.Context, hospitalID, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("patients").
		Where(sq.Eq{"patient_id": patientID, "hospital_id": hospitalID}).
		Suffix("RETURNING " + patientColumns).
		PlaceholderFormat(sq.Dollar)

	changed := false
	setIf := func(column string, v *string) {
		if v != nil {
			builder = builder.Set(column, *v)
			changed = true
		}
	}
	setIf("first_name", upd.FirstName)
	setIf("last_name", upd.LastName)
	setIf("gender", upd.Gender)
	setIf("phone", upd.Phone)
	setIf("address", upd.Address)
	setIf("photo_url", upd.PhotoURL)

	if !changed {
		return r.FindPatient(ctx, hospitalID, patientID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Patient{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*patientRepository.UpdatePatient").Msg("error: updating patient")
		return models.Patient{}, err
	}
	return patient, nil
}

// DischargePatient flags a tenant-scoped patient discharged and returns the
// updated row. Returns [ErrPatientNotFound] on a tenant-scoped miss.
func (r *patientRepository) DischargePatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error) {
	return scanPatient(r.db.QueryRowContext(ctx, dischargePatient, patientID, hospitalID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (models.Patient, error) {
	var (
		p            models.Patient
		dischargedAt sql.NullTime
	)
	err := row.Scan(&p.PatientID, &p.HospitalID, &p.DisplayID, &p.FirstName, &p.LastName,
		&p.DateOfBirth, &p.Gender, &p.Phone, &p.Address, &p.PhotoURL,
		&p.IsDischarged, &dischargedAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, ErrPatientNotFound
		}
		return models.Patient{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if dischargedAt.Valid {
		p.DischargedAt = &dischargedAt.Time
	}
	return p, nil
}
