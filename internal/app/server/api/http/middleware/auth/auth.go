package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"subtracker/internal/domain/session"
)

const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
)

type Auth struct {
	api     huma.API
	session session.Servicer
	log     *slog.Logger
}

func New(api huma.API, session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const identityKey contextKey = "identity"

// Middleware rejects a missing or malformed Authorization header with 401 and a token that fails
// verification with 403. On success the caller's identity is put into the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.write(ctx, http.StatusUnauthorized, MsgTokenRequired)
			return
		}

		id, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidToken) && !errors.Is(err, session.ErrExpiredToken) {
				a.log.Error("validate token", "error", err)
			}
			a.write(ctx, http.StatusForbidden, MsgTokenInvalid)
			return
		}

		next(huma.WithContext(ctx, WithIdentity(ctx.Context(), id)))
	}
}

func (a *Auth) write(ctx huma.Context, status int, msg string) {
	if err := huma.WriteErr(a.api, ctx, status, msg); err != nil {
		a.log.Error("write auth error", "error", err)
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func WithIdentity(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(identityKey).(session.Identity)
	return id, ok
}

func GetUserID(ctx context.Context) (int, bool) {
	id, ok := GetIdentity(ctx)
	return id.UserID, ok
}
