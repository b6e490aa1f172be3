package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/service"
)

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfileResponse(u *models.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		Provider:  string(u.Provider),
		CreatedAt: u.CreatedAt,
	}
}

type updateProfileRequest struct {
	Email string `json:"email"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.svc.Profile(r.Context(), principal.UserID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var in updateProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UpdateEmail(r.Context(), principal.UserID, in.Email)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}
