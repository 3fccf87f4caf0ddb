package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	patient, err := h.services.PatientService.CreatePatient(r.Context(), identity, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusCreated)
}

func (h *Handler) getPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	patientID, err := idParam(r)
	if err != nil {
		writeError(w, r, service.ErrNotFound)
		return
	}

	patient, err := h.services.PatientService.GetPatient(r.Context(), identity, patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	q := parseListQuery(r)

	patients, total, err := h.services.PatientService.ListPatients(r.Context(), identity, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PatientListResponse{
		Patients: patients,
		Meta:     pageMeta(q, total),
	}, http.StatusOK)
}

func (h *Handler) updatePatient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	patientID, err := idParam(r)
	if err != nil {
		writeError(w, r, service.ErrNotFound)
		return
	}

	var req models.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	patient, err := h.services.PatientService.UpdatePatient(r.Context(), identity, patientID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) dischargePatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	patientID, err := idParam(r)
	if err != nil {
		writeError(w, r, service.ErrNotFound)
		return
	}

	patient, err := h.services.PatientService.DischargePatient(r.Context(), identity, patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}
