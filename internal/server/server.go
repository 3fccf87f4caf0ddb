package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/medward/medward/internal/config"
	handlerhttp "github.com/medward/medward/internal/handler/http"
	"github.com/medward/medward/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the HTTP transport around the handler's router. An empty
// listen address is a configuration error, not a silent no-op.
func NewServer(handler *handlerhttp.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoListenAddress
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then drains in-flight
// requests and returns.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-ctx.Done()
	s.Shutdown()
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
