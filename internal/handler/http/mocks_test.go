package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// Hand-written func-field mocks for the service interfaces. Each method
// delegates to its func field when set; unset auth defaults to rejection so
// route-registration tests exercise the middleware without per-test wiring.

var errBoom = errors.New("boom")

// ─────────────────────────────────────────────
// Mock service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	loginFn        func(ctx context.Context, username, password string) (models.TokenPair, models.User, error)
	authenticateFn func(ctx context.Context, accessToken string) (models.Identity, error)
	refreshFn      func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	logoutFn       func(ctx context.Context, refreshToken string) error
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.TokenPair, models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return models.TokenPair{}, models.User{}, service.ErrInvalidCredential
}

func (m *mockAuthService) Authenticate(ctx context.Context, accessToken string) (models.Identity, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, accessToken)
	}
	return models.Identity{}, service.ErrUnauthenticated
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return models.TokenPair{}, service.ErrUnauthenticated
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, refreshToken)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock service.CredentialService
// ─────────────────────────────────────────────

type mockCredentialService struct {
	changePasswordFn         func(ctx context.Context, userID int64, oldPassword, newPassword string) error
	forcePasswordChangeFn    func(ctx context.Context, actor models.Identity, targetUserID int64) error
	requestPasswordResetFn   func(ctx context.Context, email string) error
	resetPasswordWithTokenFn func(ctx context.Context, rawToken, newPassword string) error
}

func (m *mockCredentialService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func (m *mockCredentialService) ForcePasswordChange(ctx context.Context, actor models.Identity, targetUserID int64) error {
	if m.forcePasswordChangeFn != nil {
		return m.forcePasswordChangeFn(ctx, actor, targetUserID)
	}
	return nil
}

func (m *mockCredentialService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.requestPasswordResetFn != nil {
		return m.requestPasswordResetFn(ctx, email)
	}
	return nil
}

func (m *mockCredentialService) ResetPasswordWithToken(ctx context.Context, rawToken, newPassword string) error {
	if m.resetPasswordWithTokenFn != nil {
		return m.resetPasswordWithTokenFn(ctx, rawToken, newPassword)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock service.HospitalService
// ─────────────────────────────────────────────

type mockHospitalService struct {
	createHospitalFn func(ctx context.Context, req models.CreateHospitalRequest) (models.Hospital, error)
	listHospitalsFn  func(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error)
}

func (m *mockHospitalService) CreateHospital(ctx context.Context, req models.CreateHospitalRequest) (models.Hospital, error) {
	if m.createHospitalFn != nil {
		return m.createHospitalFn(ctx, req)
	}
	return models.Hospital{}, nil
}

func (m *mockHospitalService) ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error) {
	if m.listHospitalsFn != nil {
		return m.listHospitalsFn(ctx, q)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock service.StaffService
// ─────────────────────────────────────────────

type mockStaffService struct {
	createStaffFn func(ctx context.Context, actor models.Identity, req models.CreateStaffRequest) (models.StaffCreatedResponse, error)
	listStaffFn   func(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.User, int64, error)
}

func (m *mockStaffService) CreateStaff(ctx context.Context, actor models.Identity, req models.CreateStaffRequest) (models.StaffCreatedResponse, error) {
	if m.createStaffFn != nil {
		return m.createStaffFn(ctx, actor, req)
	}
	return models.StaffCreatedResponse{}, nil
}

func (m *mockStaffService) ListStaff(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.User, int64, error) {
	if m.listStaffFn != nil {
		return m.listStaffFn(ctx, actor, q)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Mock service.PatientService
// ─────────────────────────────────────────────

type mockPatientService struct {
	createPatientFn    func(ctx context.Context, actor models.Identity, req models.CreatePatientRequest) (models.Patient, error)
	getPatientFn       func(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error)
	listPatientsFn     func(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Patient, int64, error)
	updatePatientFn    func(ctx context.Context, actor models.Identity, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error)
	dischargePatientFn func(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error)
}

func (m *mockPatientService) CreatePatient(ctx context.Context, actor models.Identity, req models.CreatePatientRequest) (models.Patient, error) {
	if m.createPatientFn != nil {
		return m.createPatientFn(ctx, actor, req)
	}
	return models.Patient{}, nil
}

func (m *mockPatientService) GetPatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	if m.getPatientFn != nil {
		return m.getPatientFn(ctx, actor, patientID)
	}
	return models.Patient{}, nil
}

func (m *mockPatientService) ListPatients(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Patient, int64, error) {
	if m.listPatientsFn != nil {
		return m.listPatientsFn(ctx, actor, q)
	}
	return nil, 0, nil
}

func (m *mockPatientService) UpdatePatient(ctx context.Context, actor models.Identity, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error) {
	if m.updatePatientFn != nil {
		return m.updatePatientFn(ctx, actor, patientID, upd)
	}
	return models.Patient{}, nil
}

func (m *mockPatientService) DischargePatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	if m.dischargePatientFn != nil {
		return m.dischargePatientFn(ctx, actor, patientID)
	}
	return models.Patient{}, nil
}

// ─────────────────────────────────────────────
// Mock service.ClinicalService
// ─────────────────────────────────────────────

type mockClinicalService struct {
	addVitalFn             func(ctx context.Context, actor models.Identity, patientID int64, req models.CreateVitalRequest) (models.Vital, error)
	listVitalsFn           func(ctx context.Context, actor models.Identity, patientID int64) ([]models.Vital, error)
	addCareNoteFn          func(ctx context.Context, actor models.Identity, patientID int64, req models.CreateCareNoteRequest) (models.CareNote, error)
	listCareNotesFn        func(ctx context.Context, actor models.Identity, patientID int64) ([]models.CareNote, error)
	createPrescriptionFn   func(ctx context.Context, actor models.Identity, patientID int64, req models.CreatePrescriptionRequest) (models.Prescription, error)
	listPrescriptionsFn    func(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Prescription, int64, error)
	dispensePrescriptionFn func(ctx context.Context, actor models.Identity, prescriptionID int64) (models.Prescription, error)
}

func (m *mockClinicalService) AddVital(ctx context.Context, actor models.Identity, patientID int64, req models.CreateVitalRequest) (models.Vital, error) {
	if m.addVitalFn != nil {
		return m.addVitalFn(ctx, actor, patientID, req)
	}
	return models.Vital{}, nil
}

func (m *mockClinicalService) ListVitals(ctx context.Context, actor models.Identity, patientID int64) ([]models.Vital, error) {
	if m.listVitalsFn != nil {
		return m.listVitalsFn(ctx, actor, patientID)
	}
	return nil, nil
}

func (m *mockClinicalService) AddCareNote(ctx context.Context, actor models.Identity, patientID int64, req models.CreateCareNoteRequest) (models.CareNote, error) {
	if m.addCareNoteFn != nil {
		return m.addCareNoteFn(ctx, actor, patientID, req)
	}
	return models.CareNote{}, nil
}

func (m *mockClinicalService) ListCareNotes(ctx context.Context, actor models.Identity, patientID int64) ([]models.CareNote, error) {
	if m.listCareNotesFn != nil {
		return m.listCareNotesFn(ctx, actor, patientID)
	}
	return nil, nil
}

func (m *mockClinicalService) CreatePrescription(ctx context.Context, actor models.Identity, patientID int64, req models.CreatePrescriptionRequest) (models.Prescription, error) {
	if m.createPrescriptionFn != nil {
		return m.createPrescriptionFn(ctx, actor, patientID, req)
	}
	return models.Prescription{}, nil
}

func (m *mockClinicalService) ListPrescriptions(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Prescription, int64, error) {
	if m.listPrescriptionsFn != nil {
		return m.listPrescriptionsFn(ctx, actor, q)
	}
	return nil, 0, nil
}

func (m *mockClinicalService) DispensePrescription(ctx context.Context, actor models.Identity, prescriptionID int64) (models.Prescription, error) {
	if m.dispensePrescriptionFn != nil {
		return m.dispensePrescriptionFn(ctx, actor, prescriptionID)
	}
	return models.Prescription{}, nil
}

// ─────────────────────────────────────────────
// Mock Pinger
// ─────────────────────────────────────────────

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler whose nil service fields are replaced with
// inert mocks, so any route can be exercised without a panic.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.CredentialService == nil {
		svcs.CredentialService = &mockCredentialService{}
	}
	if svcs.HospitalService == nil {
		svcs.HospitalService = &mockHospitalService{}
	}
	if svcs.StaffService == nil {
		svcs.StaffService = &mockStaffService{}
	}
	if svcs.PatientService == nil {
		svcs.PatientService = &mockPatientService{}
	}
	if svcs.ClinicalService == nil {
		svcs.ClinicalService = &mockClinicalService{}
	}

	return NewHandler(svcs, &mockPinger{}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// withIdentity injects a resolved identity the way the auth middleware does.
func withIdentity(r *http.Request, identity models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, identity)
	return r.WithContext(ctx)
}

// withIDParam attaches a chi route context carrying the {id} URL parameter,
// for tests that invoke a handler directly instead of through the router.
func withIDParam(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// doctorIdentity is a convenience fixture used across multiple tests.
var doctorIdentity = models.Identity{
	UserID:     2,
	HospitalID: 5,
	Roles:      models.Roles{models.RoleDoctor},
}
