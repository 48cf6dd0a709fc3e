package handler

import (
	"net/http"
	"rental/config"
	"rental/di"
	"rental/shared/logger"
	"rental/shared/timezone"
	"sync"

	rentalHTTP "rental/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server *rentalHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Service configuration is incomplete")
		}

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Msg("Falling back to UTC")
		}

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
