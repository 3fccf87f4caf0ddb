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

// clinicalRepository is the PostgreSQL-backed implementation of
// [ClinicalRepository], covering vitals, care notes, and prescriptions.
// All queries are tenant-scoped the same way as the patient repository.
type clinicalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewClinicalRepository constructs a [ClinicalRepository] backed by the
// provided database connection and logger.
func NewClinicalRepository(db *DB, logger *logger.Logger) ClinicalRepository {
	logger.Debug().Msg("creating clinical repository")
	return &clinicalRepository{
		db:     db,
		logger: logger,
	}
}

// InsertVital persists a vital-signs reading and returns it with
// server-assigned fields (VitalID, RecordedAt).
func (r *clinicalRepository) InsertVital(ctx context.Context, vital models.Vital) (models.Vital, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertVital,
		vital.HospitalID, vital.PatientID, vital.RecordedBy,
		vital.TemperatureC, vital.PulseBPM, vital.RespiratoryRate,
		vital.BloodPressure, vital.OxygenSaturation)
	if err := row.Scan(&vital.VitalID, &vital.RecordedAt); err != nil {
		log.Err(err).Str("func", "*clinicalRepository.InsertVital").Msg("error: inserting vital")
		return models.Vital{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return vital, nil
}

// ListVitals returns all readings for a tenant-scoped patient, newest first.
func (r *clinicalRepository) ListVitals(ctx context.Context, hospitalID, patientID int64) ([]models.Vital, error) {
	rows, err := r.db.QueryContext(ctx, listVitals, patientID, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var vitals []models.Vital
	for rows.Next() {
		var v models.Vital
		if err := rows.Scan(&v.VitalID, &v.HospitalID, &v.PatientID, &v.RecordedBy,
			&v.TemperatureC, &v.PulseBPM, &v.RespiratoryRate, &v.BloodPressure,
			&v.OxygenSaturation, &v.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		vitals = append(vitals, v)
	}
	return vitals, rows.Err()
}

// InsertCareNote persists a nursing note and returns it with server-assigned
// fields (NoteID, CreatedAt).
func (r *clinicalRepository) InsertCareNote(ctx context.Context, note models.CareNote) (models.CareNote, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertCareNote, note.HospitalID, note.PatientID, note.AuthorID, note.Note)
	if err := row.Scan(&note.NoteID, &note.CreatedAt); err != nil {
		log.Err(err).Str("func", "*clinicalRepository.InsertCareNote").Msg("error: inserting care note")
		return models.CareNote{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// ListCareNotes returns all notes for a tenant-scoped patient, newest first.
func (r *clinicalRepository) ListCareNotes(ctx context.Context, hospitalID, patientID int64) ([]models.CareNote, error) {
	rows, err := r.db.QueryContext(ctx, listCareNotes, patientID, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.CareNote
	for rows.Next() {
		var n models.CareNote
		if err := rows.Scan(&n.NoteID, &n.HospitalID, &n.PatientID, &n.AuthorID, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// InsertPrescription persists a medication order and returns it with
// server-assigned fields (PrescriptionID, CreatedAt).
func (r *clinicalRepository) InsertPrescription(ctx context.Context, p models.Prescription) (models.Prescription, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertPrescription,
		p.HospitalID, p.DisplayID, p.PatientID, p.DoctorID,
		p.Medication, p.Dosage, p.Frequency, p.Duration, p.Notes, string(p.Status))
	if err := row.Scan(&p.PrescriptionID, &p.CreatedAt); err != nil {
		log.Err(err).Str("func", "*clinicalRepository.InsertPrescription").Msg("error: inserting prescription")
		return models.Prescription{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return p, nil
}

// FindPrescription loads a single prescription scoped to the tenant.
// Returns [ErrPrescriptionNotFound] both when the row is absent and when it
// belongs to a different hospital.
func (r *clinicalRepository) FindPrescription(ctx context.Context, hospitalID, prescriptionID int64) (models.Prescription, error) {
	return scanPrescription(r.db.QueryRowContext(ctx, findPrescription, prescriptionID, hospitalID))
}

// ListPrescriptions returns a page of tenant-scoped prescriptions plus the
// total row count. The query joins the patients table, so orders whose
// patient row no longer exists never appear; the count uses the same join.
// Search matches medication, display ID, and patient name; Status filters by
// prescription status.
func (r *clinicalRepository) ListPrescriptions(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Prescription, int64, error) {
	log := logger.FromContext(ctx)
	q = q.Normalize()

	base := sq.Select().
		From("prescriptions pr").
		Join("patients pa ON pa.patient_id = pr.patient_id AND pa.hospital_id = pr.hospital_id").
		Where(sq.Eq{"pr.hospital_id": hospitalID}).
		PlaceholderFormat(sq.Dollar)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"pr.medication": pattern},
			sq.ILike{"pr.display_id": pattern},
			sq.ILike{"pa.first_name": pattern},
			sq.ILike{"pa.last_name": pattern},
		})
	}

	if q.Status != "" {
		base = base.Where(sq.Eq{"pr.status": q.Status})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	sortColumn := "pr.created_at"
	switch q.SortBy {
	case "medication", "display_id", "status":
		sortColumn = "pr." + q.SortBy
	}

	query, args, err := base.
		Columns("pr.prescription_id", "pr.hospital_id", "pr.display_id", "pr.patient_id",
			"pr.doctor_id", "pr.medication", "pr.dosage", "pr.frequency", "pr.duration",
			"pr.notes", "pr.status", "pr.dispensed_by", "pr.dispensed_at", "pr.created_at").
		OrderBy(sortColumn + " " + q.SortDir).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*clinicalRepository.ListPrescriptions").Msg("error: executing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var prescriptions []models.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return prescriptions, total, nil
}

// DispensePrescription transitions an ACTIVE tenant-scoped prescription to
// DISPENSED and stamps the acting pharmacist. When no row is updated, the
// repository distinguishes "absent or cross-tenant" ([ErrPrescriptionNotFound])
// from "present but already dispensed" ([ErrPrescriptionDispensed]) with a
// follow-up tenant-scoped read.
func (r *clinicalRepository) DispensePrescription(ctx context.Context, hospitalID, prescriptionID, pharmacistID int64) (models.Prescription, error) {
	p, err := scanPrescription(r.db.QueryRowContext(ctx, dispensePrescription, prescriptionID, hospitalID, pharmacistID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPrescriptionNotFound) {
		return models.Prescription{}, err
	}

	// No ACTIVE row matched; check whether it exists at all for this tenant.
	if _, findErr := r.FindPrescription(ctx, hospitalID, prescriptionID); findErr == nil {
		return models.Prescription{}, ErrPrescriptionDispensed
	}
	return models.Prescription{}, ErrPrescriptionNotFound
}

func scanPrescription(row rowScanner) (models.Prescription, error) {
	var (
		p           models.Prescription
		status      string
		dispensedBy sql.NullInt64
		dispensedAt sql.NullTime
	)
	err := row.Scan(&p.PrescriptionID, &p.HospitalID, &p.DisplayID, &p.PatientID, &p.DoctorID,
		&p.Medication, &p.Dosage, &p.Frequency, &p.Duration, &p.Notes,
		&status, &dispensedBy, &dispensedAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Prescription{}, ErrPrescriptionNotFound
		}
		return models.Prescription{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	p.Status = models.PrescriptionStatus(status)
	if dispensedBy.Valid {
		p.DispensedBy = &dispensedBy.Int64
	}
	if dispensedAt.Valid {
		p.DispensedAt = &dispensedAt.Time
	}
	return p, nil
}
