package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/models"
)

// hospitalService is the concrete implementation of HospitalService.
type hospitalService struct {
	hospitalRepository store.HospitalRepository
	logger             *logger.Logger
}

// NewHospitalService constructs a HospitalService.
func NewHospitalService(hospitals store.HospitalRepository, logger *logger.Logger) HospitalService {
	return &hospitalService{
		hospitalRepository: hospitals,
		logger:             logger,
	}
}

// CreateHospital registers a new tenant. The display-ID code is derived from
// the name at creation time and never changes afterwards, so already issued
// display IDs stay stable even if the hospital is renamed later.
func (h *hospitalService) CreateHospital(ctx context.Context, req models.CreateHospitalRequest) (models.Hospital, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Hospital{}, fmt.Errorf("%w: hospital name is required", ErrInvalidDataProvided)
	}

	created, err := h.hospitalRepository.CreateHospital(ctx, models.Hospital{
		Name:    name,
		Code:    models.DeriveHospitalCode(name),
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateHospital) {
			return models.Hospital{}, fmt.Errorf("%w: hospital name is taken", ErrConflict)
		}
		log.Err(err).Str("name", name).Msg("hospital creation failed")
		return models.Hospital{}, fmt.Errorf("hospital creation failed: %w", err)
	}

	log.Info().Int64("id", created.HospitalID).Str("code", created.Code).Msg("hospital created")
	return created, nil
}

// ListHospitals returns a page of tenants plus the total count.
func (h *hospitalService) ListHospitals(ctx context.Context, q models.ListQuery) ([]models.Hospital, int64, error) {
	hospitals, total, err := h.hospitalRepository.ListHospitals(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("hospital listing failed: %w", err)
	}
	return hospitals, total, nil
}
