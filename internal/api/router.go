package api

import (
	"net/http"
	"taskhub/internal/api/handler"
	appMiddleware "taskhub/internal/api/middleware"
	"taskhub/internal/app/service"
	"taskhub/internal/common/security"
	"taskhub/internal/domain/repository"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	taskService *service.TaskService,
	userService *service.UserService,
	userRepo repository.UserRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(appMiddleware.Metrics)

	// Verifies the Authorization: Bearer token and puts claims in context.
	// Resolution to a stored user happens in the Authenticator guard below.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authGuard := appMiddleware.Authenticator(userRepo)

	// Public operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService, authGuard)
		api.Route("/auth", authHandler.RegisterRoutes)

		taskHandler := handler.NewTaskHandler(taskService, authGuard)
		api.Route("/tasks", taskHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService, authGuard)
		api.Route("/users", userHandler.RegisterRoutes)
	})

	return r
}
