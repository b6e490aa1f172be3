package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/service"
)

type cartItemRequest struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int32     `json:"quantity"`
}

type cartItemResponse struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int32     `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

func toCartItemResponse(item *models.CartItem) cartItemResponse {
	return cartItemResponse{
		BookID:   item.BookID,
		Quantity: item.Quantity,
		AddedAt:  item.AddedAt,
	}
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	items, err := h.svc.Cart(r.Context(), principal.UserID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]cartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toCartItemResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var in cartItemRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.svc.AddToCart(r.Context(), principal.UserID, in.BookID, in.Quantity); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bookID, err := pathUUID(r, "bookId")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemoveFromCart(r.Context(), principal.UserID, bookID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
