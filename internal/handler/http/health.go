package http

import (
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// healthz reports liveness plus database connectivity.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check: database unreachable")
		utils.WriteJSON(w, models.ErrorResponse{Error: "database unreachable"}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "ok"}, http.StatusOK)
}
