package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/shared/constant"
	"rental/transport/http/response"
	"rental/transport/http/router"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 10 * time.Second

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	State  ServerState
	db     *postgres.Connection
	kafka  kafka.Client
	tracer otel.Otel
	server *http.Server
	once   sync.Once
}

func New(cfg *config.Config, r router.Router, db *postgres.Connection, kafka kafka.Client, tracer otel.Otel) *HTTP {
	response.HideInternalErrors(cfg.Server.Env == constant.ServerEnvProduction)

	return &HTTP{
		Config: cfg,
		Router: r,
		db:     db,
		kafka:  kafka,
		tracer: tracer,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	serverErr := make(chan error, 1)

	go func() {
		log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

		serverErr <- h.server.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	case <-signals:
		h.shutdown()
	}
}

// ServeHTTP lets the server run behind a serverless entrypoint.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()

	h.server.Handler.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.server = &http.Server{
			Addr:              net.JoinHostPort("0.0.0.0", h.Config.Server.Port),
			Handler:           h.Router.Handler(),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		h.State = ServerStateReady
	})
}

func (h *HTTP) shutdown() {
	defer h.release()

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		if err := h.server.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close HTTP server")
		}

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod
	h.Router.Drain()

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to drain HTTP server")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) release() {
	if err := h.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka writer")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
	defer cancel()

	if err := h.tracer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	h.db.Close()
}
