package api

import (
	"credit-engine/internal/api/handler"
	mw "credit-engine/internal/api/middleware"
	"credit-engine/internal/config"
	"credit-engine/internal/domain/calculator"
	"credit-engine/internal/domain/creditrequest"
	"log/slog"
	"net/http"
	"time"

	_ "credit-engine/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/redis/go-redis/v9"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Services struct {
	Calculator    calculator.Service
	CreditRequest creditrequest.Service
}

// SetupRouter wires middleware and routes. redisClient may be nil, in which
// case rate limiting stays in-process.
func SetupRouter(services Services, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, redisClient, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupCalculatorRoutes(router, services.Calculator, cfg, logger)
	setupCreditRequestRoutes(router, services.CreditRequest, cfg, logger)
	setupAdminRoutes(router, services.CreditRequest, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if cfg.Server.RateLimit.Enabled {
		router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger).Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCalculatorRoutes(router *chi.Mux, svc calculator.Service, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCalculatorHandler(svc, logger)

	router.Route("/calculator", func(r chi.Router) {
		r.Get("/presets", h.ListPresets)
		r.Post("/schedule", h.CalculateSchedule)
		r.Post("/compare", h.Compare)
		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
			r.Post("/history", h.SaveCalculation)
			r.Get("/history", h.ListHistory)
		})
	})
}

func setupCreditRequestRoutes(router *chi.Mux, svc creditrequest.Service, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCreditRequestHandler(svc, logger)

	router.Route("/credit-requests", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.Submit)
		r.Get("/", h.ListMine)
		r.Get("/{requestID}", h.Get)
	})
}

func setupAdminRoutes(router *chi.Mux, svc creditrequest.Service, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewAdminHandler(svc, logger)

	router.Route("/admin", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Use(mw.RequireRole(mw.RoleAdmin))
		r.Get("/credit-requests", h.ListCreditRequests)
		r.Post("/credit-requests/{requestID}/status", h.UpdateStatus)
		r.Get("/statistics", h.GetStatistics)
	})
}
