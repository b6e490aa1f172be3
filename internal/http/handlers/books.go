package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/service"
)

type bookResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	PriceCents int64     `json:"priceCents"`
	Stock      int32     `json:"stock"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toBookResponse(b *models.Book) bookResponse {
	return bookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		PriceCents: b.PriceCents,
		Stock:      b.Stock,
		CreatedAt:  b.CreatedAt,
	}
}

type reviewRequest struct {
	Rating int32  `json:"rating"`
	Text   string `json:"text"`
}

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int32     `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(rv *models.Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID,
		BookID:    rv.BookID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Text:      rv.Text,
		CreatedAt: rv.CreatedAt,
	}
}

// pathUUID парсит UUID-параметр маршрута.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, service.ErrInvalidArgument
	}

	return id, nil
}

// queryInt32 парсит неотрицательный числовой query-параметр; отсутствие — 0.
func queryInt32(r *http.Request, name string) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return 0
	}

	return int32(v)
}

func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context(), queryInt32(r, "limit"), queryInt32(r, "offset"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	book, err := h.svc.BookByID(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	reviews, err := h.svc.ReviewsByBook(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bookID, err := pathUUID(r, "id")
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	var in reviewRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	review, err := h.svc.AddReview(r.Context(), principal.UserID, bookID, in.Rating, in.Text)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(review))
}
