package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/di"
	"roombooker/shared/constant"
	"roombooker/shared/logger"
	"roombooker/transport/http/response"

	httpTransport "roombooker/transport/http"
)

var (
	server  *httpTransport.HTTP
	initErr error
	once    sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server, initErr = di.InitializeService()
		if initErr != nil {
			log.Error().Err(initErr).Msg("Failed to initialize service")
		}
	})

	if initErr != nil {
		response.WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)

		return
	}

	server.ServeHTTP(w, r)
}
