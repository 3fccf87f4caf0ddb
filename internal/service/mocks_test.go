package service

import (
	"context"
	"errors"
	"time"

	"github.com/medward/medward/models"
)

// Hand-written func-field mocks for the store and mailer interfaces. Each
// method delegates to its func field when set and returns zero values
// otherwise.

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn          func(ctx context.Context, user models.User) (models.User, error)
	findUserByIDFn        func(ctx context.Context, userID int64) (models.User, error)
	findUserByUsernameFn  func(ctx context.Context, username string) (models.User, error)
	findUserByEmailFn     func(ctx context.Context, email string) (models.User, error)
	listUsersByHospitalFn func(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.User, int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsersByHospital(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.User, int64, error) {
	if m.listUsersByHospitalFn != nil {
		return m.listUsersByHospitalFn(ctx, hospitalID, q)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.CredentialRepository
// ─────────────────────────────────────────────

type mockCredentialRepository struct {
	recentPasswordHistoryFn    func(ctx context.Context, userID int64, limit int) ([]models.PasswordHistoryEntry, error)
	applyPasswordChangeFn      func(ctx context.Context, userID int64, newHash string) error
	applyPasswordResetFn       func(ctx context.Context, tokenID int64, userID int64, newHash string) error
	forcePasswordChangeFn      func(ctx context.Context, userID int64) error
	insertRefreshTokenFn       func(ctx context.Context, token models.RefreshToken) error
	findRefreshTokenFn         func(ctx context.Context, tokenID string) (models.RefreshToken, error)
	revokeRefreshTokenFn       func(ctx context.Context, tokenID string) error
	createResetTokenFn         func(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error)
	findResetTokenByHashFn     func(ctx context.Context, tokenHash string) (models.PasswordResetToken, error)
	deleteStaleRefreshTokensFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockCredentialRepository) RecentPasswordHistory(ctx context.Context, userID int64, limit int) ([]models.PasswordHistoryEntry, error) {
	if m.recentPasswordHistoryFn != nil {
		return m.recentPasswordHistoryFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockCredentialRepository) ApplyPasswordChange(ctx context.Context, userID int64, newHash string) error {
	if m.applyPasswordChangeFn != nil {
		return m.applyPasswordChangeFn(ctx, userID, newHash)
	}
	return nil
}

func (m *mockCredentialRepository) ApplyPasswordReset(ctx context.Context, tokenID int64, userID int64, newHash string) error {
	if m.applyPasswordResetFn != nil {
		return m.applyPasswordResetFn(ctx, tokenID, userID, newHash)
	}
	return nil
}

func (m *mockCredentialRepository) ForcePasswordChange(ctx context.Context, userID int64) error {
	if m.forcePasswordChangeFn != nil {
		return m.forcePasswordChangeFn(ctx, userID)
	}
	return nil
}

func (m *mockCredentialRepository) InsertRefreshToken(ctx context.Context, token models.RefreshToken) error {
	if m.insertRefreshTokenFn != nil {
		return m.insertRefreshTokenFn(ctx, token)
	}
	return nil
}

func (m *mockCredentialRepository) FindRefreshToken(ctx context.Context, tokenID string) (models.RefreshToken, error) {
	if m.findRefreshTokenFn != nil {
		return m.findRefreshTokenFn(ctx, tokenID)
	}
	return models.RefreshToken{}, nil
}

func (m *mockCredentialRepository) RevokeRefreshToken(ctx context.Context, tokenID string) error {
	if m.revokeRefreshTokenFn != nil {
		return m.revokeRefreshTokenFn(ctx, tokenID)
	}
	return nil
}

func (m *mockCredentialRepository) CreateResetToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error) {
	if m.createResetTokenFn != nil {
		return m.createResetTokenFn(ctx, token)
	}
	return token, nil
}

func (m *mockCredentialRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (models.PasswordResetToken, error) {
	if m.findResetTokenByHashFn != nil {
		return m.findResetTokenByHashFn(ctx, tokenHash)
	}
	return models.PasswordResetToken{}, nil
}

func (m *mockCredentialRepository) DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteStaleRefreshTokensFn != nil {
		return m.deleteStaleRefreshTokensFn(ctx, cutoff)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.HospitalRepository
// ─────────────────────────────────────────────

type mockHospitalRepository struct {
	createHospitalFn   func(ctx context.Context, hospital models.Hospital) (models.Hospital, error)
	findHospitalByIDFn func(ctx context.Context, hospitalID int64) (models.Hospital, error)
	listHospitalsFn    func(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error)
}

func (m *mockHospitalRepository) CreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	if m.createHospitalFn != nil {
		return m.createHospitalFn(ctx, hospital)
	}
	return hospital, nil
}

func (m *mockHospitalRepository) FindHospitalByID(ctx context.Context, hospitalID int64) (models.Hospital, error) {
	if m.findHospitalByIDFn != nil {
		return m.findHospitalByIDFn(ctx, hospitalID)
	}
	return models.Hospital{HospitalID: hospitalID, Code: "SMH"}, nil
}

func (m *mockHospitalRepository) ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error) {
	if m.listHospitalsFn != nil {
		return m.listHospitalsFn(ctx, q)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.PatientRepository
// ─────────────────────────────────────────────

type mockPatientRepository struct {
	createPatientFn    func(ctx context.Context, patient models.Patient) (models.Patient, error)
	findPatientFn      func(ctx context.Context, hospitalID, patientID int64) (models.Patient, error)
	listPatientsFn     func(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Patient, int64, error)
	updatePatientFn    func(ctx context.Context, hospitalID, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error)
	dischargePatientFn func(ctx context.Context, hospitalID, patientID int64) (models.Patient, error)
}

func (m *mockPatientRepository) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	if m.createPatientFn != nil {
		return m.createPatientFn(ctx, patient)
	}
	return patient, nil
}

func (m *mockPatientRepository) FindPatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error) {
	if m.findPatientFn != nil {
		return m.findPatientFn(ctx, hospitalID, patientID)
	}
	return models.Patient{PatientID: patientID, HospitalID: hospitalID}, nil
}

func (m *mockPatientRepository) ListPatients(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Patient, int64, error) {
	if m.listPatientsFn != nil {
		return m.listPatientsFn(ctx, hospitalID, q)
	}
	return nil, 0, nil
}

func (m *mockPatientRepository) UpdatePatient(ctx context.Context, hospitalID, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error) {
	if m.updatePatientFn != nil {
		return m.updatePatientFn(ctx, hospitalID, patientID, upd)
	}
	return models.Patient{}, nil
}

func (m *mockPatientRepository) DischargePatient(ctx context.Context, hospitalID, patientID int64) (models.Patient, error) {
	if m.dischargePatientFn != nil {
		return m.dischargePatientFn(ctx, hospitalID, patientID)
	}
	return models.Patient{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ClinicalRepository
// ─────────────────────────────────────────────

type mockClinicalRepository struct {
	insertVitalFn          func(ctx context.Context, vital models.Vital) (models.Vital, error)
	listVitalsFn           func(ctx context.Context, hospitalID, patientID int64) ([]models.Vital, error)
	insertCareNoteFn       func(ctx context.Context, note models.CareNote) (models.CareNote, error)
	listCareNotesFn        func(ctx context.Context, hospitalID, patientID int64) ([]models.CareNote, error)
	insertPrescriptionFn   func(ctx context.Context, p models.Prescription) (models.Prescription, error)
	findPrescriptionFn     func(ctx context.Context, hospitalID, prescriptionID int64) (models.Prescription, error)
	listPrescriptionsFn    func(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Prescription, int64, error)
	dispensePrescriptionFn func(ctx context.Context, hospitalID, prescriptionID, pharmacistID int64) (models.Prescription, error)
}

func (m *mockClinicalRepository) InsertVital(ctx context.Context, vital models.Vital) (models.Vital, error) {
	if m.insertVitalFn != nil {
		return m.insertVitalFn(ctx, vital)
	}
	return vital, nil
}

func (m *mockClinicalRepository) ListVitals(ctx context.Context, hospitalID, patientID int64) ([]models.Vital, error) {
	if m.listVitalsFn != nil {
		return m.listVitalsFn(ctx, hospitalID, patientID)
	}
	return nil, nil
}

func (m *mockClinicalRepository) InsertCareNote(ctx context.Context, note models.CareNote) (models.CareNote, error) {
	if m.insertCareNoteFn != nil {
		return m.insertCareNoteFn(ctx, note)
	}
	return note, nil
}

func (m *mockClinicalRepository) ListCareNotes(ctx context.Context, hospitalID, patientID int64) ([]models.CareNote, error) {
	if m.listCareNotesFn != nil {
		return m.listCareNotesFn(ctx, hospitalID, patientID)
	}
	return nil, nil
}

func (m *mockClinicalRepository) InsertPrescription(ctx context.Context, p models.Prescription) (models.Prescription, error) {
	if m.insertPrescriptionFn != nil {
		return m.insertPrescriptionFn(ctx, p)
	}
	return p, nil
}

func (m *mockClinicalRepository) FindPrescription(ctx context.Context, hospitalID, prescriptionID int64) (models.Prescription, error) {
	if m.findPrescriptionFn != nil {
		return m.findPrescriptionFn(ctx, hospitalID, prescriptionID)
	}
	return models.Prescription{}, nil
}

func (m *mockClinicalRepository) ListPrescriptions(ctx context.Context, hospitalID int64, q models.ListQuery) ([]models.Prescription, int64, error) {
	if m.listPrescriptionsFn != nil {
		return m.listPrescriptionsFn(ctx, hospitalID, q)
	}
	return nil, 0, nil
}

func (m *mockClinicalRepository) DispensePrescription(ctx context.Context, hospitalID, prescriptionID, pharmacistID int64) (models.Prescription, error) {
	if m.dispensePrescriptionFn != nil {
		return m.dispensePrescriptionFn(ctx, hospitalID, prescriptionID, pharmacistID)
	}
	return models.Prescription{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.SequenceRepository
// ─────────────────────────────────────────────

type mockSequenceRepository struct {
	nextValueFn func(ctx context.Context, hospitalID int64, kind string) (int64, error)
}

func (m *mockSequenceRepository) NextValue(ctx context.Context, hospitalID int64, kind string) (int64, error) {
	if m.nextValueFn != nil {
		return m.nextValueFn(ctx, hospitalID, kind)
	}
	return 1, nil
}

// ─────────────────────────────────────────────
// Mock: mailer.Notifier
// ─────────────────────────────────────────────

type mockNotifier struct {
	sendPasswordResetEmailFn func(ctx context.Context, toEmail, toName, resetToken string) error
	sendWelcomeEmailFn       func(ctx context.Context, toEmail, toName, username, tempPassword string) error
}

func (m *mockNotifier) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if m.sendPasswordResetEmailFn != nil {
		return m.sendPasswordResetEmailFn(ctx, toEmail, toName, resetToken)
	}
	return nil
}

func (m *mockNotifier) SendWelcomeEmail(ctx context.Context, toEmail, toName, username, tempPassword string) error {
	if m.sendWelcomeEmailFn != nil {
		return m.sendWelcomeEmailFn(ctx, toEmail, toName, username, tempPassword)
	}
	return nil
}
