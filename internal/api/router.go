package api

import (
	"net/http"

	"github.com/Rrens/skill-swap/internal/api/handler"
	customMiddleware "github.com/Rrens/skill-swap/internal/api/middleware"
	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/repository/redis"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/service"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router. redisClient may be nil,
// in which case login and register are not rate limited.
func NewRouter(cfg *config.Config, st *store.Store, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Initialize services
	directoryService := service.NewDirectoryService(st)
	identityService := service.NewIdentityService(st, hasher)
	requestService := service.NewRequestService(st, directoryService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(identityService, directoryService, jwtManager)
	userHandler := handler.NewUserHandler(directoryService, cfg.Pagination.UsersPerPage)
	requestHandler := handler.NewRequestHandler(requestService, cfg.Pagination.RequestsPerPage)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	// Credential endpoints are throttled per client IP when Redis is available
	limit := func(scope string) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		limiter := redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		return customMiddleware.NewRateLimitMiddleware(limiter, scope).LimitByIP
	}
	if redisClient == nil {
		log.Warn().Msg("Redis disabled, auth endpoints are not rate limited")
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(st))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.With(limit("register")).Post("/register", authHandler.Register)
			r.With(limit("login")).Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)

				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Patch("/me", authHandler.UpdateMe)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/{userID}", userHandler.Get)
			})

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", requestHandler.List)
				r.Post("/", requestHandler.Create)
				r.Patch("/{requestID}", requestHandler.UpdateStatus)
			})
		})
	})

	return r
}
