package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/models"
)

// patientService is the concrete implementation of PatientService. Every
// operation runs inside the actor's tenant; a patient of another hospital is
// reported as [ErrNotFound] at every entry point.
type patientService struct {
	patientRepository  store.PatientRepository
	hospitalRepository store.HospitalRepository
	sequenceRepository store.SequenceRepository
	logger             *logger.Logger
}

// NewPatientService constructs a PatientService.
func NewPatientService(
	patients store.PatientRepository,
	hospitals store.HospitalRepository,
	sequences store.SequenceRepository,
	logger *logger.Logger,
) PatientService {
	return &patientService{
		patientRepository:  patients,
		hospitalRepository: hospitals,
		sequenceRepository: sequences,
		logger:             logger,
	}
}

// CreatePatient registers a patient in the actor's tenant, allocating a
// human-readable display ID from the tenant's PAT sequence.
func (p *patientService) CreatePatient(ctx context.Context, actor models.Identity, req models.CreatePatientRequest) (models.Patient, error) {
	log := logger.FromContext(ctx)

	if req.FirstName == "" || req.LastName == "" {
		return models.Patient{}, fmt.Errorf("%w: first and last name are required", ErrInvalidDataProvided)
	}
	if req.DateOfBirth.IsZero() {
		return models.Patient{}, fmt.Errorf("%w: date of birth is required", ErrInvalidDataProvided)
	}

	displayID, err := nextDisplayID(ctx, p.hospitalRepository, p.sequenceRepository, actor.HospitalID, kindPatient)
	if err != nil {
		log.Err(err).Msg("display ID allocation failed")
		return models.Patient{}, err
	}

	created, err := p.patientRepository.CreatePatient(ctx, models.Patient{
		HospitalID:  actor.HospitalID,
		DisplayID:   displayID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		log.Err(err).Msg("patient creation failed")
		return models.Patient{}, fmt.Errorf("patient creation failed: %w", err)
	}

	log.Info().Int64("id", created.PatientID).Str("display_id", created.DisplayID).Msg("patient created")
	return created, nil
}

// GetPatient loads a single tenant-scoped patient.
func (p *patientService) GetPatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	patient, err := p.patientRepository.FindPatient(ctx, actor.HospitalID, patientID)
	if err != nil {
		if errors.Is(err, store.ErrPatientNotFound) {
			return models.Patient{}, ErrNotFound
		}
		return models.Patient{}, fmt.Errorf("patient lookup failed: %w", err)
	}
	return patient, nil
}

// ListPatients returns a page of the actor's tenant patients plus the total
// count.
func (p *patientService) ListPatients(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Patient, int64, error) {
	patients, total, err := p.patientRepository.ListPatients(ctx, actor.HospitalID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("patient listing failed: %w", err)
	}
	return patients, total, nil
}

// UpdatePatient applies the populated fields of upd to a tenant-scoped
// patient. Identity fields (display ID, date of birth, tenant) are not
// updatable.
func (p *patientService) UpdatePatient(ctx context.Context, actor models.Identity, patientID int64, upd models.UpdatePatientRequest) (models.Patient, error) {
	log := logger.FromContext(ctx)

	patient, err := p.patientRepository.UpdatePatient(ctx, actor.HospitalID, patientID, upd)
	if err != nil {
		if errors.Is(err, store.ErrPatientNotFound) {
			return models.Patient{}, ErrNotFound
		}
		log.Err(err).Int64("id", patientID).Msg("patient update failed")
		return models.Patient{}, fmt.Errorf("patient update failed: %w", err)
	}
	return patient, nil
}

// DischargePatient marks a tenant-scoped patient discharged. A patient who
// is already discharged maps to [ErrInvalidState]; the operation is not
// repeatable because DischargedAt records the single discharge moment.
func (p *patientService) DischargePatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	log := logger.FromContext(ctx)

	patient, err := p.GetPatient(ctx, actor, patientID)
	if err != nil {
		return models.Patient{}, err
	}
	if patient.IsDischarged {
		return models.Patient{}, fmt.Errorf("%w: patient is already discharged", ErrInvalidState)
	}

	discharged, err := p.patientRepository.DischargePatient(ctx, actor.HospitalID, patientID)
	if err != nil {
		if errors.Is(err, store.ErrPatientNotFound) {
			return models.Patient{}, ErrNotFound
		}
		log.Err(err).Int64("id", patientID).Msg("patient discharge failed")
		return models.Patient{}, fmt.Errorf("patient discharge failed: %w", err)
	}

	log.Info().Int64("id", patientID).Int64("actor", actor.UserID).Msg("patient discharged")
	return discharged, nil
}
