package service

import (
	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/mailer"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/validators"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	AuthService       AuthService
	CredentialService CredentialService
	HospitalService   HospitalService
	StaffService      StaffService
	PatientService    PatientService
	ClinicalService   ClinicalService
}

// NewServices wires the service layer on top of the repositories and the
// mail notifier.
func NewServices(storages *store.Storages, notifier mailer.Notifier, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	passwordValidator := validators.NewPasswordValidator()

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository, storages.CredentialRepository, cfg.App, logger),
		CredentialService: NewCredentialService(
			storages.UserRepository, storages.CredentialRepository, passwordValidator, notifier, cfg.App, logger),
		HospitalService: NewHospitalService(storages.HospitalRepository, logger),
		StaffService:    NewStaffService(storages.UserRepository, notifier, logger),
		PatientService: NewPatientService(
			storages.PatientRepository, storages.HospitalRepository, storages.SequenceRepository, logger),
		ClinicalService: NewClinicalService(
			storages.ClinicalRepository, storages.PatientRepository, storages.HospitalRepository, storages.SequenceRepository, logger),
	}
}
