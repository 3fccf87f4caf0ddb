package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) createHospital(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	hospital, err := h.services.HospitalService.CreateHospital(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, hospital, http.StatusCreated)
}

func (h *Handler) listHospitals(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	hospitals, total, err := h.services.HospitalService.ListHospitals(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, struct {
		Hospitals []models.Hospital `json:"hospitals"`
		Meta      models.PageMeta   `json:"meta"`
	}{
		Hospitals: hospitals,
		Meta:      pageMeta(q, total),
	}, http.StatusOK)
}
