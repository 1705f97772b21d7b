// Package api provides the HTTP API server and handlers for the Fandex application.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fandexapp/fandex-server/internal/metrics"
	"github.com/fandexapp/fandex-server/internal/store"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	metrics         *metrics.Collector
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
// The registry is exposed at /metrics when non-nil.
func NewServer(
	st store.Store,
	services *Services,
	collector *metrics.Collector,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		logger:          logger,
		metrics:         collector,
		authRateLimiter: NewRateLimiter(100, time.Minute, 50),
	}

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(s.metricsMiddleware)
	router.Use(s.authPathRateLimit)
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("Fandex API", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerSearchRoutes()
	s.registerFavoriteRoutes()
	s.registerRecommendationRoutes()

	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// metricsMiddleware records a counter per method and response status.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.metrics.HTTPResponse(r.Method, ww.Status())
	})
}

// authPathRateLimit applies the per-IP limiter to authentication endpoints.
// Credential guessing is the main abuse vector, so only those paths pay the
// bookkeeping cost.
func (s *Server) authPathRateLimit(next http.Handler) http.Handler {
	limited := RateLimitMiddleware(s.authRateLimiter, s.logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/auth/") {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
