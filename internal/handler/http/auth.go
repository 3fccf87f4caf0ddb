package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	pair, user, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		TokenPair:          pair,
		MustChangePassword: user.MustChangePassword,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// me echoes the caller's resolved identity.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	utils.WriteJSON(w, identity, http.StatusOK)
}
