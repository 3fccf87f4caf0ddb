package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/models"
)

// clinicalService is the concrete implementation of ClinicalService.
//
// Every operation first resolves the patient inside the actor's tenant, so a
// cross-tenant patient ID fails with [ErrNotFound] before any clinical data
// is touched. New records for a discharged patient are rejected with
// [ErrInvalidState]; listings stay available after discharge.
type clinicalService struct {
	clinicalRepository store.ClinicalRepository
	patientRepository  store.PatientRepository
	hospitalRepository store.HospitalRepository
	sequenceRepository store.SequenceRepository
	logger             *logger.Logger
}

// NewClinicalService constructs a ClinicalService.
func NewClinicalService(
	clinical store.ClinicalRepository,
	patients store.PatientRepository,
	hospitals store.HospitalRepository,
	sequences store.SequenceRepository,
	logger *logger.Logger,
) ClinicalService {
	return &clinicalService{
		clinicalRepository: clinical,
		patientRepository:  patients,
		hospitalRepository: hospitals,
		sequenceRepository: sequences,
		logger:             logger,
	}
}

// AddVital records a vital-signs reading for an admitted tenant patient.
func (c *clinicalService) AddVital(ctx context.Context, actor models.Identity, patientID int64, req models.CreateVitalRequest) (models.Vital, error) {
	log := logger.FromContext(ctx)

	if _, err := c.admittedPatient(ctx, actor, patientID); err != nil {
		return models.Vital{}, err
	}

	vital, err := c.clinicalRepository.InsertVital(ctx, models.Vital{
		HospitalID:       actor.HospitalID,
		PatientID:        patientID,
		RecordedBy:       actor.UserID,
		TemperatureC:     req.TemperatureC,
		PulseBPM:         req.PulseBPM,
		RespiratoryRate:  req.RespiratoryRate,
		BloodPressure:    req.BloodPressure,
		OxygenSaturation: req.OxygenSaturation,
	})
	if err != nil {
		log.Err(err).Int64("patient", patientID).Msg("vital recording failed")
		return models.Vital{}, fmt.Errorf("vital recording failed: %w", err)
	}

	return vital, nil
}

// ListVitals returns all readings of a tenant patient, newest first. Reads
// are allowed for discharged patients.
func (c *clinicalService) ListVitals(ctx context.Context, actor models.Identity, patientID int64) ([]models.Vital, error) {
	if _, err := c.tenantPatient(ctx, actor, patientID); err != nil {
		return nil, err
	}

	vitals, err := c.clinicalRepository.ListVitals(ctx, actor.HospitalID, patientID)
	if err != nil {
		return nil, fmt.Errorf("vital listing failed: %w", err)
	}
	return vitals, nil
}

// AddCareNote records a nursing note for an admitted tenant patient.
func (c *clinicalService) AddCareNote(ctx context.Context, actor models.Identity, patientID int64, req models.CreateCareNoteRequest) (models.CareNote, error) {
	log := logger.FromContext(ctx)

	if req.Note == "" {
		return models.CareNote{}, fmt.Errorf("%w: note text is required", ErrInvalidDataProvided)
	}

	if _, err := c.admittedPatient(ctx, actor, patientID); err != nil {
		return models.CareNote{}, err
	}

	note, err := c.clinicalRepository.InsertCareNote(ctx, models.CareNote{
		HospitalID: actor.HospitalID,
		PatientID:  patientID,
		AuthorID:   actor.UserID,
		Note:       req.Note,
	})
	if err != nil {
		log.Err(err).Int64("patient", patientID).Msg("care note recording failed")
		return models.CareNote{}, fmt.Errorf("care note recording failed: %w", err)
	}

	return note, nil
}

// ListCareNotes returns all notes of a tenant patient, newest first.
func (c *clinicalService) ListCareNotes(ctx context.Context, actor models.Identity, patientID int64) ([]models.CareNote, error) {
	if _, err := c.tenantPatient(ctx, actor, patientID); err != nil {
		return nil, err
	}

	notes, err := c.clinicalRepository.ListCareNotes(ctx, actor.HospitalID, patientID)
	if err != nil {
		return nil, fmt.Errorf("care note listing failed: %w", err)
	}
	return notes, nil
}

// CreatePrescription writes a medication order for an admitted tenant
// patient, allocating a display ID from the tenant's RX sequence. The order
// starts in ACTIVE state.
func (c *clinicalService) CreatePrescription(ctx context.Context, actor models.Identity, patientID int64, req models.CreatePrescriptionRequest) (models.Prescription, error) {
	log := logger.FromContext(ctx)

	if req.Medication == "" || req.Dosage == "" || req.Frequency == "" {
		return models.Prescription{}, fmt.Errorf("%w: medication, dosage and frequency are required", ErrInvalidDataProvided)
	}

	if _, err := c.admittedPatient(ctx, actor, patientID); err != nil {
		return models.Prescription{}, err
	}

	displayID, err := nextDisplayID(ctx, c.hospitalRepository, c.sequenceRepository, actor.HospitalID, kindPrescription)
	if err != nil {
		log.Err(err).Msg("display ID allocation failed")
		return models.Prescription{}, err
	}

	prescription, err := c.clinicalRepository.InsertPrescription(ctx, models.Prescription{
		HospitalID: actor.HospitalID,
		DisplayID:  displayID,
		PatientID:  patientID,
		DoctorID:   actor.UserID,
		Medication: req.Medication,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		Duration:   req.Duration,
		Notes:      req.Notes,
		Status:     models.PrescriptionActive,
	})
	if err != nil {
		log.Err(err).Int64("patient", patientID).Msg("prescription creation failed")
		return models.Prescription{}, fmt.Errorf("prescription creation failed: %w", err)
	}

	log.Info().Str("display_id", prescription.DisplayID).Int64("patient", patientID).Msg("prescription created")
	return prescription, nil
}

// ListPrescriptions returns a page of the actor's tenant prescriptions plus
// the total count.
func (c *clinicalService) ListPrescriptions(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.Prescription, int64, error) {
	prescriptions, total, err := c.clinicalRepository.ListPrescriptions(ctx, actor.HospitalID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("prescription listing failed: %w", err)
	}
	return prescriptions, total, nil
}

// DispensePrescription transitions an ACTIVE tenant prescription to
// DISPENSED, stamping the acting pharmacist.
func (c *clinicalService) DispensePrescription(ctx context.Context, actor models.Identity, prescriptionID int64) (models.Prescription, error) {
	log := logger.FromContext(ctx)

	prescription, err := c.clinicalRepository.DispensePrescription(ctx, actor.HospitalID, prescriptionID, actor.UserID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrPrescriptionNotFound):
			return models.Prescription{}, ErrNotFound
		case errors.Is(err, store.ErrPrescriptionDispensed):
			return models.Prescription{}, fmt.Errorf("%w: prescription is already dispensed", ErrInvalidState)
		default:
			log.Err(err).Int64("id", prescriptionID).Msg("prescription dispense failed")
			return models.Prescription{}, fmt.Errorf("prescription dispense failed: %w", err)
		}
	}

	log.Info().Str("display_id", prescription.DisplayID).Int64("actor", actor.UserID).Msg("prescription dispensed")
	return prescription, nil
}

// tenantPatient resolves a patient inside the actor's tenant, mapping a
// cross-tenant or missing row to [ErrNotFound].
func (c *clinicalService) tenantPatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	patient, err := c.patientRepository.FindPatient(ctx, actor.HospitalID, patientID)
	if err != nil {
		if errors.Is(err, store.ErrPatientNotFound) {
			return models.Patient{}, ErrNotFound
		}
		return models.Patient{}, fmt.Errorf("patient lookup failed: %w", err)
	}
	return patient, nil
}

// admittedPatient is tenantPatient plus the discharge gate for new clinical
// records.
func (c *clinicalService) admittedPatient(ctx context.Context, actor models.Identity, patientID int64) (models.Patient, error) {
	patient, err := c.tenantPatient(ctx, actor, patientID)
	if err != nil {
		return models.Patient{}, err
	}
	if patient.IsDischarged {
		return models.Patient{}, fmt.Errorf("%w: patient is discharged", ErrInvalidState)
	}
	return patient, nil
}
