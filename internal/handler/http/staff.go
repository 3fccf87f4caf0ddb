package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	var req models.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	created, err := h.services.StaffService.CreateStaff(r.Context(), identity, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	q := parseListQuery(r)

	users, total, err := h.services.StaffService.ListStaff(r.Context(), identity, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserListResponse{
		Users: users,
		Meta:  pageMeta(q, total),
	}, http.StatusOK)
}
