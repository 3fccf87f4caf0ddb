package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/mailer"
	"github.com/medward/medward/internal/store"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// staffService is the concrete implementation of StaffService. All
// operations are bound to the actor's tenant; a hospital admin can only see
// and create accounts of their own hospital.
type staffService struct {
	userRepository store.UserRepository
	notifier       mailer.Notifier
	logger         *logger.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(users store.UserRepository, notifier mailer.Notifier, logger *logger.Logger) StaffService {
	return &staffService{
		userRepository: users,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateStaff onboards a staff member in the actor's tenant. The account is
// created with a generated temporary password and MustChangePassword set, so
// the credential is rotated on first login. The temporary password is
// returned once in the response and dispatched by welcome email; a delivery
// failure does not roll the account back and is reported as a warning.
func (s *staffService) CreateStaff(ctx context.Context, actor models.Identity, req models.CreateStaffRequest) (models.StaffCreatedResponse, error) {
	log := logger.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return models.StaffCreatedResponse{}, fmt.Errorf("%w: username and email are required", ErrInvalidDataProvided)
	}

	roles, err := models.ParseRoles(req.Roles)
	if err != nil {
		return models.StaffCreatedResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if len(roles) == 0 {
		return models.StaffCreatedResponse{}, fmt.Errorf("%w: at least one role is required", ErrInvalidDataProvided)
	}
	if roles.Has(models.RoleSuperAdmin) {
		return models.StaffCreatedResponse{}, fmt.Errorf("%w: role is not assignable", ErrInvalidDataProvided)
	}

	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		log.Err(err).Msg("temporary password generation failed")
		return models.StaffCreatedResponse{}, fmt.Errorf("temporary password generation failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(tempPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.StaffCreatedResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := s.userRepository.CreateUser(ctx, models.User{
		HospitalID:         actor.HospitalID,
		Username:           username,
		Email:              email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PasswordHash:       passwordHash,
		Roles:              roles,
		MustChangePassword: true,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return models.StaffCreatedResponse{}, fmt.Errorf("%w: username or email is taken", ErrConflict)
		}
		log.Err(err).Str("username", username).Msg("staff creation failed")
		return models.StaffCreatedResponse{}, fmt.Errorf("staff creation failed: %w", err)
	}

	resp := models.StaffCreatedResponse{
		User:         created,
		TempPassword: tempPassword,
	}

	name := created.FirstName + " " + created.LastName
	if err := s.notifier.SendWelcomeEmail(ctx, created.Email, name, created.Username, tempPassword); err != nil {
		log.Warn().Err(err).Int64("id", created.UserID).Msg("welcome email delivery failed")
		resp.Warning = "welcome email could not be delivered"
	}

	log.Info().Int64("actor", actor.UserID).Int64("id", created.UserID).Msg("staff account created")
	return resp, nil
}

// ListStaff returns a page of the actor's tenant accounts plus the total
// count.
func (s *staffService) ListStaff(ctx context.Context, actor models.Identity, q models.ListQuery) ([]models.User, int64, error) {
	users, total, err := s.userRepository.ListUsersByHospital(ctx, actor.HospitalID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("staff listing failed: %w", err)
	}
	return users, total, nil
}
