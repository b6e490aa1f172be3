package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/models"
)

type orderItemResponse struct {
	BookID     uuid.UUID `json:"bookId"`
	Quantity   int32     `json:"quantity"`
	PriceCents int64     `json:"priceCents"`
}

type orderResponse struct {
	ID         uuid.UUID           `json:"id"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"totalCents"`
	Items      []orderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"createdAt"`
}

func toOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	return orderResponse{
		ID:         order.ID,
		Status:     string(order.Status),
		TotalCents: order.TotalCents,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	order, err := h.svc.Checkout(r.Context(), principal.UserID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	orders, err := h.svc.Orders(r.Context(), principal.UserID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}

	writeJSON(w, http.StatusOK, out)
}
