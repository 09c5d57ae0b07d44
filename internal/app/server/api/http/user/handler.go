package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"subtracker/internal/app/server/api/http/middleware/auth"
	"subtracker/internal/domain/session"
	"subtracker/internal/domain/user"
)

type Handler struct {
	service        user.Servicer
	session        session.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler takes two middleware groups: public ones for register/login and authenticated ones for /api/me.
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, public, authenticated huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		session:        session,
		log:            log.With("component", "user_handler"),
		middleware:     public,
		authMiddleware: authenticated,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*authOutput, error) {
	if input.Body.Email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	u, err := h.service.Register(ctx, user.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return nil, huma.Error400BadRequest("User already exists")
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		default:
			h.log.Error("register", "error", err)
			return nil, huma.Error500InternalServerError("Internal server error")
		}
	}

	return h.issue(ctx, u, "User created successfully")
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error400BadRequest("Email and password are required")
		case errors.Is(err, user.ErrInvalidAuth):
			return nil, huma.Error401Unauthorized("Invalid credentials")
		default:
			h.log.Error("login", "error", err)
			return nil, huma.Error500InternalServerError("Internal server error")
		}
	}

	return h.issue(ctx, u, "Login successful")
}

func (h *Handler) issue(ctx context.Context, u user.User, message string) (*authOutput, error) {
	token, err := h.session.Create(ctx, session.Identity{UserID: u.ID, Email: u.Email})
	if err != nil {
		h.log.Error("create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &authOutput{
		Body: authResponse{
			Message: message,
			Token:   token,
			User: userPayload{
				ID:    u.ID,
				Email: u.Email,
				Name:  optional(u.Name),
			},
		},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		h.log.Error("find user", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &meOutput{
		Body: meResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      optional(u.Name),
			CreatedAt: u.CreatedAt,
		},
	}, nil
}
