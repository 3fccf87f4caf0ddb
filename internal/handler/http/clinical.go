package http

import (
	"encoding/json"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

func (h *Handler) addVital(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateVitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	vital, err := h.services.ClinicalService.AddVital(r.Context(), identity, patientID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vital, http.StatusCreated)
}

func (h *Handler) listVitals(w http.ResponseWriter, r *http.Request) {
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

	vitals, err := h.services.ClinicalService.ListVitals(r.Context(), identity, patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vitals, http.StatusOK)
}

func (h *Handler) addCareNote(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateCareNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	note, err := h.services.ClinicalService.AddCareNote(r.Context(), identity, patientID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) listCareNotes(w http.ResponseWriter, r *http.Request) {
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

	notes, err := h.services.ClinicalService.ListCareNotes(r.Context(), identity, patientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createPrescription(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	prescription, err := h.services.ClinicalService.CreatePrescription(r.Context(), identity, patientID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, prescription, http.StatusCreated)
}

func (h *Handler) listPrescriptions(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	q := parseListQuery(r)

	prescriptions, total, err := h.services.ClinicalService.ListPrescriptions(r.Context(), identity, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PrescriptionListResponse{
		Prescriptions: prescriptions,
		Meta:          pageMeta(q, total),
	}, http.StatusOK)
}

func (h *Handler) dispensePrescription(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	prescriptionID, err := idParam(r)
	if err != nil {
		writeError(w, r, service.ErrNotFound)
		return
	}

	prescription, err := h.services.ClinicalService.DispensePrescription(r.Context(), identity, prescriptionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, prescription, http.StatusOK)
}
