package http

import (
	"context"

	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/internal/service"
)

// Pinger reports backing-store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	pinger   Pinger

	logger *logger.Logger
}

func NewHandler(services *service.Services, pinger Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		pinger:   pinger,
		logger:   logger,
	}
}
