package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
)

func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	ids, err := h.svc.Favorites(r.Context(), principal.UserID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	writeJSON(w, http.StatusOK, ids)
}

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bookID, err := pathUUID(r, "bookId")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if err := h.svc.AddFavorite(r.Context(), principal.UserID, bookID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bookID, err := pathUUID(r, "bookId")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemoveFavorite(r.Context(), principal.UserID, bookID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
