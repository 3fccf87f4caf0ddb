// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"net/http"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
	"github.com/medward/medward/internal/utils"
	"github.com/medward/medward/models"
)

// errorStatusMap binds the transport-independent service taxonomy to HTTP
// status codes. This is the only place the mapping exists; handlers never
// pick status codes for service errors themselves.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:    http.StatusBadRequest,
	service.ErrUnauthenticated:        http.StatusUnauthorized,
	service.ErrInvalidCredential:      http.StatusUnauthorized,
	service.ErrForbidden:              http.StatusForbidden,
	service.ErrPasswordChangeRequired: http.StatusForbidden,
	service.ErrNotFound:               http.StatusNotFound,
	service.ErrConflict:               http.StatusConflict,
	service.ErrInvalidState:           http.StatusBadRequest,
	service.ErrPolicyViolation:        http.StatusBadRequest,
	service.ErrPasswordReused:         http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken:  http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status code and writes the uniform error
// envelope. Taxonomy errors carry their message to the client; anything
// unmapped is logged and reported as a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("unexpected error")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(status)}, status)
		return
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, status)
}
