package contenttype

import (
	"mime"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// JSON rejects POST and PUT requests whose body is not declared as application/json.
type JSON struct {
	api huma.API
	log *slog.Logger
}

func New(api huma.API, log *slog.Logger) *JSON {
	return &JSON{
		api: api,
		log: log.With("component", "content_type_middleware"),
	}
}

func (j *JSON) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		switch ctx.Method() {
		case http.MethodPost, http.MethodPut:
		default:
			next(ctx)
			return
		}

		mediaType, _, err := mime.ParseMediaType(ctx.Header("Content-Type"))
		if err != nil || mediaType != "application/json" {
			if werr := huma.WriteErr(j.api, ctx, http.StatusBadRequest, "Content-Type must be application/json"); werr != nil {
				j.log.Error("write content type error", "error", werr)
			}
			return
		}

		next(ctx)
	}
}
