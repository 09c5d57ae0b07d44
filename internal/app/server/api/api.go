// Routes:
//
//	GET    /api/health                 public
//	POST   /api/register               public
//	POST   /api/login                  public
//	GET    /api/me                     bearer
//	GET    /api/subscriptions          bearer
//	POST   /api/subscriptions          bearer
//	GET    /api/subscriptions/stats    bearer
//	GET    /api/subscriptions/{id}     bearer
//	PUT    /api/subscriptions/{id}     bearer
//	DELETE /api/subscriptions/{id}     bearer
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/exp/slog"

	healthAPI "subtracker/internal/app/server/api/http/health"
	"subtracker/internal/app/server/api/http/middleware"
	"subtracker/internal/app/server/api/http/middleware/auth"
	"subtracker/internal/app/server/api/http/middleware/contenttype"
	"subtracker/internal/app/server/api/http/middleware/logger"
	subscriptionAPI "subtracker/internal/app/server/api/http/subscription"
	userAPI "subtracker/internal/app/server/api/http/user"
	"subtracker/internal/app/server/config"
	"subtracker/internal/domain/session"
	"subtracker/internal/domain/subscription"
	"subtracker/internal/domain/user"
	"subtracker/internal/infrastructure/storage"
)

type Handlers struct {
	Health       *healthAPI.Handler
	User         *userAPI.Handler
	Subscription *subscriptionAPI.Handler
}

var errorsOnce sync.Once

// validationAsBadRequest makes huma report request validation failures as 400 instead of 422.
func validationAsBadRequest() {
	errorsOnce.Do(func() {
		newError := huma.NewError
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			return newError(status, msg, errs...)
		}
	})
}

// New builds the whole HTTP surface on top of store.
func New(store storage.Storage, cfg *config.Config, log *slog.Logger) http.Handler {
	validationAsBadRequest()

	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Subscription Tracker API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	// responses carry only their documented fields
	humaConfig.CreateHooks = nil

	API := humachi.New(mux, humaConfig)

	h := handlers(API, store, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Subscription.SetupRoutes(API)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.Server.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposedHeaders: []string{logger.RequestIDHeader},
		MaxAge:         int((12 * time.Hour).Seconds()),
	})

	return c.Handler(mux)
}

func handlers(API huma.API, store storage.Storage, cfg *config.Config, log *slog.Logger) *Handlers {
	sessionService := session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	authMW := auth.New(API, sessionService, log)
	loggerMW := logger.New(log)
	jsonMW := contenttype.New(API, log)
	logged := middleware.New(loggerMW.Middleware())
	authed := logged.Then(authMW.Middleware())

	healthHandler := healthAPI.NewHandler(log, logged.Middlewares())

	userService := user.NewService(store.Users(), user.NewCredentialsValidator(), log, user.WithCost(cfg.Auth.BcryptCost))
	public := logged.Then(jsonMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, public.Middlewares(), authed.Middlewares())

	subscriptionService := subscription.NewService(store.Subscriptions(), log)
	subscriptionHandler := subscriptionAPI.NewHandler(subscriptionService, log, authed.Then(jsonMW.Middleware()).Middlewares())

	return &Handlers{
		Health:       healthHandler,
		User:         userHandler,
		Subscription: subscriptionHandler,
	}
}
