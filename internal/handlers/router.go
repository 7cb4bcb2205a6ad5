package handlers

import (
	"fmt"
	"net/http"

	"showrunner/internal/logging"
	"showrunner/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig selects the middleware applied to the status router.
type RouterConfig struct {
	Logging     middleware.LoggingConfig
	Metrics     middleware.MetricsConfig
	Compression middleware.CompressionConfig
}

// DefaultRouterConfig returns the middleware defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Logging:     middleware.DefaultLoggingConfig(),
		Metrics:     middleware.DefaultMetricsConfig(),
		Compression: middleware.DefaultCompressionConfig(),
	}
}

// Router builds the status server routes.
func (h *Handlers) Router(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logger(cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", metricsHandler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Compression(cfg.Compression))
	api.HandleFunc("/status", h.GetStatus).Methods("GET")
	api.HandleFunc("/playlist", h.GetPlaylist).Methods("GET")
	api.HandleFunc("/playlist/{index}", h.GetPlaylistItem).Methods("GET")

	// Subrouters report method mismatches themselves; without their own
	// handler mux falls through to the root NotFoundHandler.
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.MethodNotAllowedHandler = methodNotAllowed
	api.MethodNotAllowedHandler = methodNotAllowed

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})

	return r
}

// metricsHandler serves the default registry. A failing collector drops
// its own series instead of failing the scrape.
func metricsHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorLog:          scrapeErrorLog{},
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: true,
		}),
	)
}

// scrapeErrorLog routes promhttp errors to the application log.
type scrapeErrorLog struct{}

func (scrapeErrorLog) Println(v ...interface{}) {
	logging.Warn("Metrics scrape: %s", fmt.Sprint(v...))
}
