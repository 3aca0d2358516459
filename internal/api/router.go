package api

import (
	"net/http"

	"github.com/eventfeed-io/server/internal/api/handlers"
	"github.com/eventfeed-io/server/internal/api/middleware"
	"github.com/eventfeed-io/server/internal/api/problem"
	"github.com/eventfeed-io/server/internal/config"
	"github.com/eventfeed-io/server/internal/domain/events"
	"github.com/eventfeed-io/server/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter assembles the HTTP surface around an injected events service.
// The service owns the remote store client; no handler reaches for globals.
func NewRouter(cfg config.Config, logger zerolog.Logger, service *events.Service, version, gitCommit string) http.Handler {
	eventsHandler := handlers.NewEventsHandler(service, cfg.Environment)
	checker := handlers.NewHealthChecker(service, version, gitCommit)

	notFound := notFoundHandler(cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/v1/health", methodMux(map[string]http.Handler{
		http.MethodGet: checker.Health(),
	}, notFound))
	mux.Handle("/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.List),
	}, notFound))
	mux.Handle("/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Get),
	}, notFound))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/", notFound)

	var handler http.Handler = mux
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

// methodMux dispatches by HTTP method. Anything not registered gets the
// same 404 as an unknown path; this API never answers 405.
func methodMux(handlers map[string]http.Handler, notFound http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		notFound.ServeHTTP(w, r)
	})
}

func notFoundHandler(env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusNotFound, "https://eventfeed.io/problems/not-found", "Not found", nil, env)
	})
}
