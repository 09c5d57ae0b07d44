package subscription

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "subscriptions-list",
		Method:      http.MethodGet,
		Path:        "/api/subscriptions",
		Summary:     "List the caller's subscriptions, newest first",
		Tags:        []string{"subscriptions"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "subscriptions-create",
		Method:        http.MethodPost,
		Path:          "/api/subscriptions",
		Summary:       "Create a subscription",
		Description:   "appName, category, price, billingCycle and nextBilling are required.",
		Tags:          []string{"subscriptions"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "subscriptions-stats",
		Method:      http.MethodGet,
		Path:        "/api/subscriptions/stats",
		Summary:     "Monthly and yearly totals",
		Tags:        []string{"subscriptions"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "subscriptions-find",
		Method:      http.MethodGet,
		Path:        "/api/subscriptions/{id}",
		Summary:     "Get one subscription",
		Tags:        []string{"subscriptions"},
		Security:    bearer,
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "subscriptions-update",
		Method:      http.MethodPut,
		Path:        "/api/subscriptions/{id}",
		Summary:     "Update a subscription",
		Description: "Only the provided fields change. An empty notes string clears the notes.",
		Tags:        []string{"subscriptions"},
		Security:    bearer,
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "subscriptions-delete",
		Method:      http.MethodDelete,
		Path:        "/api/subscriptions/{id}",
		Summary:     "Delete a subscription",
		Tags:        []string{"subscriptions"},
		Security:    bearer,
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}
