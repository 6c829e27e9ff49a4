package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ilya-burinskiy/webapis/internal/app/configs"
	"github.com/ilya-burinskiy/webapis/internal/app/middlewares"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

// Services used by handlers
type Services struct {
	TimestampResolver services.TimestampResolver
	URLShortener      services.URLShortener
	ExerciseTracker   services.ExerciseTracker
	IPChecker         services.IPChecker
	RateLimiter       *middlewares.RateLimiter
}

// NewRouter
func NewRouter(config configs.Config, store storage.Storage, s Services) chi.Router {
	if s.RateLimiter == nil {
		s.RateLimiter = middlewares.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
	}
	if s.IPChecker == nil {
		s.IPChecker = services.NewIPChecker(config.TrustedSubnet)
	}

	router := chi.NewRouter()
	handlers := NewHandlers(config, store)
	router.Use(
		middlewares.RequestID,
		middlewares.ResponseLogger,
		middlewares.RequestLogger,
		middleware.Recoverer,
		middleware.StripSlashes,
		middlewares.CORS,
		middlewares.GzipCompress,
		middleware.AllowContentEncoding("gzip"),
	)

	router.Get("/", handlers.Root)
	router.Get("/ping", handlers.Ping)
	router.Get("/timestamp/api", handlers.Timestamp(s.TimestampResolver))
	router.Get("/timestamp/api/{date}", handlers.Timestamp(s.TimestampResolver))
	router.Get("/api/whoami", handlers.Whoami)

	router.Route("/api/shorturl", func(router chi.Router) {
		router.With(s.RateLimiter.Limit).Post("/", handlers.CreateShortURL(s.URLShortener))
		router.Get("/{id}", handlers.GetShortURL(s.URLShortener))
		router.Get("/{id}/qrcode", handlers.GetShortURLQRCode(s.URLShortener))
	})

	router.Route("/api/users", func(router chi.Router) {
		router.With(s.RateLimiter.Limit).Post("/", handlers.CreateUser(s.ExerciseTracker))
		router.Get("/", handlers.ListUsers(s.ExerciseTracker))
		router.With(s.RateLimiter.Limit).Post("/{id}/exercises", handlers.AddExercise(s.ExerciseTracker))
		router.Get("/{id}/exercises", handlers.GetLogs(s.ExerciseTracker))
		router.Get("/{id}/logs", handlers.GetLogs(s.ExerciseTracker))
	})

	router.With(s.RateLimiter.Limit).Post("/api/fileanalyse", handlers.AnalyseFile)

	router.Group(func(router chi.Router) {
		router.Use(middlewares.OnlyTrustedIP(s.IPChecker))
		router.Get("/api/internal/stats", handlers.GetStats)
	})

	return router
}
