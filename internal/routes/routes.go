package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/handlers"
	"github.com/AnshRaj112/lessonhub-backend/internal/middleware"
)

// Deps is everything the router needs. Redis and Registry are optional.
type Deps struct {
	Logger         zerolog.Logger
	Auth           handlers.AuthFlow
	Avatars        handlers.AvatarUploader
	Catalog        handlers.Catalog
	Redis          *redis.Client
	Registry       *prometheus.Registry
	AllowedOrigins []string
	AllowedHost    string
	Production     bool
	TrustProxy     bool
	UploadDir      string // served under /uploads/
	UploadMaxBytes int64
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middleware.RequestLogging(d.Logger, d.TrustProxy) {
		r.Use(mw)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(d.AllowedOrigins))

	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler)
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	// Health check (no rate limit)
	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		if d.Production {
			for _, mw := range middleware.ProductionSecurity(d.AllowedHost, d.TrustProxy) {
				r.Use(mw)
			}
		}
		if d.Redis != nil {
			r.Use(middleware.RedisRateLimit(d.Redis, middleware.RateLimitMaxRequests, middleware.RateLimitWindow, d.TrustProxy))
		}
		setupRoutes(r, d)
	})

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)
	return r
}

func setupRoutes(r chi.Router, d Deps) {
	users := handlers.NewUserHandler(d.Auth, d.Avatars, d.UploadMaxBytes)
	catalog := handlers.NewCatalogHandler(d.Catalog)
	credentialLimit := middleware.NewCredentialLimiter(d.TrustProxy).Handler

	r.Get("/", handlers.Root)

	r.Route("/user", func(r chi.Router) {
		r.Get("/validate", handlers.Protected(d.Auth, users.Validate))
		r.With(credentialLimit).Post("/register", users.Register)
		r.With(credentialLimit).Post("/login", users.Login)
		r.Post("/uploadAvatar", users.UploadAvatar)
	})

	r.Get("/lesson/list", catalog.ListLessons)
	r.Get("/lesson/{id}", catalog.GetLesson)
	r.Get("/slider/list", catalog.ListSliders)

	if d.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}
}
