// Package routing wires the engine's inbound ports to HTTP handlers.
package routing

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quintet-io/matchforge/cmd/matchforge-api/controllers"
	"github.com/quintet-io/matchforge/cmd/matchforge-api/middlewares"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
	"github.com/quintet-io/matchforge/pkg/infra/observability"
)

const (
	Queue        = "/queue/{region}"
	QueueEntry   = "/queue/{region}/{player_id}"
	QueueList    = "/queue"
	QueueStream  = "/queue/{player_id}/stream"
	EngineStats  = "/engine-metrics"
	Metrics      = "/metrics"
	Health       = "/health"
	HealthLive   = "/health/live"
	HealthReady  = "/health/ready"
)

func NewRouter(commands in.QueueCommandHandler, queries in.QueueQueryHandler, health *observability.HealthService, appMetrics *observability.ApplicationMetrics) http.Handler {
	r := mux.NewRouter()

	cors := middlewares.NewCORSMiddleware()
	limiter := middlewares.NewRateLimiter(50, 100)
	r.Use(appMetrics.MetricsMiddleware)
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(cors.Handler)
	r.Use(limiter.Handler)

	queueController := controllers.NewQueueController(commands)
	queryController := controllers.NewQueryController(queries)
	streamController := controllers.NewStreamController(queries)

	r.HandleFunc(Queue, queueController.Enqueue).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(QueueEntry, queueController.Cancel).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc(QueueList, queryController.Snapshot).Methods(http.MethodGet)
	r.HandleFunc(QueueStream, streamController.Stream).Methods(http.MethodGet)
	r.HandleFunc(EngineStats, queryController.EngineMetrics).Methods(http.MethodGet)

	r.Handle(Metrics, promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix(Health).Handler(health.HTTPHandler())

	return r
}
