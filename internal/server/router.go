package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/terminplaner/internal/auth"
	"github.com/iudanet/terminplaner/internal/config"
	"github.com/iudanet/terminplaner/internal/metrics"
	"github.com/iudanet/terminplaner/internal/server/handlers"
	"github.com/iudanet/terminplaner/internal/server/middleware"
	"github.com/iudanet/terminplaner/internal/server/storage"
)

// RouterDeps собирает зависимости, необходимые для построения роутера
type RouterDeps struct {
	Logger       *slog.Logger
	Config       *config.Config
	UserStorage  storage.UserStorage
	EventStorage storage.EventStorage
	Hasher       *auth.BcryptHasher
	Metrics      *metrics.Collector
	RateLimiter  *middleware.RateLimiter
	Version      string
}

// NewRouter строит роутер со всеми маршрутами и цепочкой middleware.
//
// Порядок цепочки: recovery → logging → metrics → CORS → rate limit.
// Маршруты событий дополнительно проходят через auth middleware.
func NewRouter(deps *RouterDeps) http.Handler {
	jwtConfig := handlers.JWTConfig{
		Secret:   []byte(deps.Config.JWTSecret),
		TokenTTL: deps.Config.TokenTTL,
	}

	authHandler := handlers.NewAuthHandler(deps.Logger, deps.UserStorage, deps.Hasher, jwtConfig, deps.Config.Development())
	eventHandler := handlers.NewEventHandler(deps.Logger, deps.EventStorage, deps.Config.Development())
	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.Version)

	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware(routePattern))
	}
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigin))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	// Публичные маршруты
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Get("/api/health", healthHandler.Health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Защищенные маршруты: вся работа с событиями требует токена
	r.Route("/api/events", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(deps.Logger, jwtConfig))

		r.Get("/", eventHandler.List)
		r.Post("/", eventHandler.Create)
		r.Put("/{id}", eventHandler.Update)
		r.Delete("/{id}", eventHandler.Delete)
	})

	return r
}

// routePattern возвращает шаблон совпавшего маршрута для метрик
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}
