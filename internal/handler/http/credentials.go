package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.CredentialService.ChangePassword(r.Context(), identity.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password changed"}, http.StatusOK)
}

// forgotPassword always acknowledges with the same body, whether or not the
// address is registered.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.CredentialService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{
		Message: "if the address is registered, a reset email has been sent",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.CredentialService.ResetPasswordWithToken(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password reset"}, http.StatusOK)
}

func (h *Handler) forcePasswordChange(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	targetID, err := idParam(r)
	if err != nil {
		writeError(w, r, service.ErrNotFound)
		return
	}

	if err := h.services.CredentialService.ForcePasswordChange(r.Context(), identity, targetID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password change required at next login"}, http.StatusOK)
}
