package health

import (
	"context"
	"net/http"
	"time"

	"workforce/config"
	"workforce/infras/otel"
	"workforce/shared/constant"
	"workforce/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db     Pinger
	config *config.Config
	otel   otel.Otel
}

type Status struct {
	Status   string `json:"status"`
	Name     string `json:"name"`
	Env      string `json:"env"`
	Database string `json:"database"`
}

func New(db Pinger, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		db:     db,
		config: cfg,
		otel:   otel,
	}
}

// Router mounts the welcome endpoint. /health is mounted by the server so it can report
// shutdown state before anything else.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Root)
}

// Root greets API clients
// @Summary Welcome
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Router / [get]
func (handler *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, constant.ResponseMessageWelcome)
}

// Health reports liveness and database reachability
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("health check failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Status{
		Status:   constant.ResponseMessageHealthy,
		Name:     handler.config.App.Name,
		Env:      handler.config.Server.Env,
		Database: constant.ResponseMessageHealthy,
	})
}
