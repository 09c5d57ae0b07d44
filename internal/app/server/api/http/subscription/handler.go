package subscription

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"subtracker/internal/app/server/api/http/middleware/auth"
	"subtracker/internal/domain/subscription"
)

type Handler struct {
	service    subscription.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service subscription.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "subscription_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.statsOp(), h.stats)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	list, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.fail("list", userID, err)
	}

	return &listOutput{Body: subscription.NewListResponse(list)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	sub, err := h.service.Create(ctx, userID, input.Body.Fields())
	if err != nil {
		return nil, h.fail("create", userID, err)
	}

	return &output{Body: subscription.NewResponse(sub)}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	sub, err := h.service.Find(ctx, userID, input.ID)
	if err != nil {
		return nil, h.fail("find", userID, err)
	}

	return &output{Body: subscription.NewResponse(sub)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	sub, err := h.service.Update(ctx, userID, input.ID, input.Body.Fields())
	if err != nil {
		return nil, h.fail("update", userID, err)
	}

	return &output{Body: subscription.NewResponse(sub)}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.fail("delete", userID, err)
	}

	return &deleteOutput{Body: messageResponse{Message: "Subscription deleted successfully"}}, nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	st, err := h.service.Stats(ctx, userID)
	if err != nil {
		return nil, h.fail("stats", userID, err)
	}

	return &statsOutput{Body: subscription.NewStatsResponse(st)}, nil
}

// fail maps service errors to HTTP ones. Storage details are logged, never returned.
func (h *Handler) fail(op string, userID int, err error) error {
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		return huma.Error404NotFound("Subscription not found")
	case errors.Is(err, subscription.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	default:
		h.log.Error(op+" subscription", "user_id", userID, "error", err)
		return huma.Error500InternalServerError("Internal server error")
	}
}
