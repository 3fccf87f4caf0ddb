package store

import (
	"context"
	"time"

	"github.com/medward/medward/models"
)

// UserRepository manages staff and administrative accounts.
type UserRepository interface {
	// CreateUser persists a new account together with its role set in a
	// single transaction. Returns [ErrDuplicateUser] when the username or
	// email is already registered.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID loads a user and its roles by primary key.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUserByUsername loads a user and its roles by login identifier.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail loads a user and its roles by email address.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// ListUsersByHospital returns a page of tenant-scoped accounts plus
	// the total tenant-scoped row count.
	ListUsersByHospital(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.User, int64, error)
}

// CredentialRepository manages password hashes, the append-only password
// history, refresh tokens, and password reset tokens. Mutating operations
// that the credential lifecycle requires to be atomic are implemented as
// single database transactions.
type CredentialRepository interface {
	// RecentPasswordHistory returns the most recent history entries for a
	// user, newest first, limited to limit rows.
	RecentPasswordHistory(ctx context.Context, userID int64, limit int) ([]models.PasswordHistoryEntry, error)

	// ApplyPasswordChange atomically stores the new password hash, clears
	// the must-change flag, appends a history entry, and revokes every
	// unrevoked refresh token of the user.
	ApplyPasswordChange(ctx context.Context, userID int64, newHash string) error

	// ApplyPasswordReset performs the same atomic unit as
	// ApplyPasswordChange and additionally marks the consumed reset token
	// used, all in one transaction.
	ApplyPasswordReset(ctx context.Context, tokenID int64, userID int64, newHash string) error

	// ForcePasswordChange atomically sets the must-change flag and
	// revokes every unrevoked refresh token of the target user.
	ForcePasswordChange(ctx context.Context, userID int64) error

	// InsertRefreshToken persists a freshly issued refresh token row.
	InsertRefreshToken(ctx context.Context, token models.RefreshToken) error

	// FindRefreshToken loads a refresh token row by its ID (the JWT "jti"
	// claim). Returns [ErrRefreshTokenNotFound] when absent.
	FindRefreshToken(ctx context.Context, tokenID string) (models.RefreshToken, error)

	// RevokeRefreshToken marks a single refresh token revoked. Revocation
	// is idempotent and never undone.
	RevokeRefreshToken(ctx context.Context, tokenID string) error

	// CreateResetToken atomically supersedes (marks used) any prior
	// unused reset token of the user and inserts the new one, so at most
	// one active reset token exists per user.
	CreateResetToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error)

	// FindResetTokenByHash loads a reset token row by the SHA-256 digest
	// of the raw token value. Returns [ErrResetTokenNotFound] when absent.
	FindResetTokenByHash(ctx context.Context, tokenHash string) (models.PasswordResetToken, error)

	// DeleteStaleRefreshTokens removes revoked or expired refresh tokens
	// created before the cutoff. Housekeeping only; live tokens are never
	// touched.
	DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// HospitalRepository manages tenants.
type HospitalRepository interface {
	// CreateHospital persists a new tenant. Returns
	// [ErrDuplicateHospital] when the name is taken.
	CreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error)

	// FindHospitalByID loads a tenant by primary key.
	FindHospitalByID(ctx context.Context, hospitalID int64) (models.Hospital, error)

	// ListHospitals returns a page of tenants plus the total row count.
	ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error)
}

// PatientRepository manages tenant-scoped patient records. Every method
// takes the acting tenant and applies it as an equality filter; a row that
// exists under a different tenant is reported as [ErrPatientNotFound].
type PatientRepository interface {
	CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error)
	FindPatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error)
	ListPatients(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Patient, int64, error)
	UpdatePatient(ctx context.Context, hospitalID, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error)
	DischargePatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error)
}

// ClinicalRepository manages vitals, care notes, and prescriptions, all
// tenant-scoped the same way as [PatientRepository].
type ClinicalRepository interface {
	InsertVital(ctx context.Context, vital models.Vital) (models.Vital, error)
	ListVitals(ctx context.Context, hospitalID, patientID int64) ([]models.Vital, error)

	InsertCareNote(ctx context.Context, note models.CareNote) (models.CareNote, error)
	ListCareNotes(ctx context.Context, hospitalID, patientID int64) ([]models.CareNote, error)

	InsertPrescription(ctx context.Context, p models.Prescription) (models.Prescription, error)
	FindPrescription(ctx context.Context, hospitalID, prescriptionID int64) (models.Prescription, error)
	ListPrescriptions(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Prescription, int64, error)

	// DispensePrescription transitions an ACTIVE prescription to
	// DISPENSED. Returns [ErrPrescriptionNotFound] for a tenant-scoped
	// miss and [ErrPrescriptionDispensed] when the row exists but is not
	// ACTIVE.
	DispensePrescription(ctx context.Context, hospitalID, prescriptionID, pharmacistID int64) (models.Prescription, error)
}

// SequenceRepository hands out per-tenant, per-kind sequence numbers through
// an atomic upsert, so concurrent callers never observe the same value.
type SequenceRepository interface {
	// NextValue increments and returns the counter for (hospitalID, kind).
	NextValue(ctx context.Context, hospitalID int64, kind string) (int64, error)
}
