package handler

import (
	"net/http"
	"sync"

	"workforce/config"
	"workforce/di"
	"workforce/shared/logger"
	"workforce/shared/metrics"
	"workforce/shared/timezone"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entry point. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		metrics.Register()

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
