package service

import (
	"context"

	"github.com/medward/medward/models"
)

// AuthService handles credential verification and the JWT token lifecycle.
type AuthService interface {
	// Login verifies username and password and issues a fresh token pair.
	// Returns [ErrInvalidCredential] when either is wrong; the response
	// does not reveal which.
	Login(ctx context.Context, username, password string) (models.TokenPair, models.User, error)

	// Authenticate verifies an access token and resolves the caller's
	// current identity from the user store. Returns [ErrUnauthenticated]
	// on any token or lookup failure.
	Authenticate(ctx context.Context, accessToken string) (models.Identity, error)

	// Refresh rotates a refresh token: the presented token is revoked and
	// a new pair is issued. Returns [ErrUnauthenticated] when the token
	// is invalid, revoked, or expired.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// CredentialService implements the password lifecycle: policy validation,
// self-service change, administrative force-change, and token-based reset.
type CredentialService interface {
	// ChangePassword rotates the caller's own password. Returns
	// [ErrInvalidCredential] on an old-password mismatch,
	// [ErrPolicyViolation] when the new password fails policy (all
	// violations joined), and [ErrPasswordReused] when it matches a
	// recently used one.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error

	// ForcePasswordChange flags a same-tenant account for mandatory
	// rotation and revokes its sessions. A target outside the actor's
	// tenant is reported as [ErrNotFound].
	ForcePasswordChange(ctx context.Context, actor models.Identity, targetUserID int64) error

	// RequestPasswordReset issues a reset token for the account behind
	// email and dispatches it by mail. The outcome is uniform: an unknown
	// address and a successful dispatch both return nil.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPasswordWithToken consumes a reset token and sets a new
	// password. Unknown, used, superseded, or expired tokens all map to
	// [ErrInvalidOrExpiredToken].
	ResetPasswordWithToken(ctx context.Context, rawToken, newPassword string) error
}

// HospitalService manages tenants.
type HospitalService interface {
	// CreateHospital registers a tenant, deriving its display-ID code
	// from the name. A taken name maps to [ErrConflict].
	CreateHospital(ctx context.Context, req models.CreateHospitalRequest) (models.Hospital, error)

	// ListHospitals returns a page of tenants plus the total count.
	ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error)
}

// StaffService manages staff accounts inside the actor's tenant.
type StaffService interface {
	// CreateStaff onboards a staff member with a generated temporary
	// password and dispatches a welcome email. Delivery failure does not
	// roll the account back; it is surfaced as a warning in the result.
	CreateStaff(ctx context.Context, actor models.Identity, req models.CreateStaffRequest) (models.StaffCreatedResponse, error)

	// ListStaff returns a page of the actor's tenant accounts plus the
	// total count.
	ListStaff(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.User, int64, error)
}

// PatientService manages tenant-scoped patient records. Cross-tenant access
// is uniformly reported as [ErrNotFound].
type PatientService interface {
	CreatePatient(ctx context.Context, actor models.Identity, req models.CreatePatientRequest) (models.Patient, error)
	GetPatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error)
	ListPatients(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Patient, int64, error)
	UpdatePatient(ctx context.Context, actor models.Identity, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error)

	// DischargePatient marks the patient discharged. Discharging an
	// already discharged patient maps to [ErrInvalidState].
	DischargePatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error)
}

// ClinicalService manages vitals, care notes, and prescriptions. Writing a
// new record for a discharged patient maps to [ErrInvalidState]; reads stay
// allowed after discharge.
type ClinicalService interface {
	AddVital(ctx context.Context, actor models.Identity, patientID int64, req models.CreateVitalRequest) (models.Vital, error)
	ListVitals(ctx context.Context, actor models.Identity, patientID int64) ([]models.Vital, error)

	AddCareNote(ctx context.Context, actor models.Identity, patientID int64, req models.CreateCareNoteRequest) (models.CareNote, error)
	ListCareNotes(ctx context.Context, actor models.Identity, patientID int64) ([]models.CareNote, error)

	CreatePrescription(ctx context.Context, actor models.Identity, patientID int64, req models.CreatePrescriptionRequest) (models.Prescription, error)
	ListPrescriptions(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Prescription, int64, error)

	// DispensePrescription transitions an ACTIVE prescription to
	// DISPENSED on behalf of the acting pharmacist. An already dispensed
	// prescription maps to [ErrInvalidState].
	DispensePrescription(ctx context.Context, actor models.Identity, prescriptionID int64) (models.Prescription, error)
}
