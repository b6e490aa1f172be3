package models

import (
	"time"

	"github.com/google/uuid"
)

// Book - позиция каталога.
type Book struct {
	ID         uuid.UUID
	Title      string
	Author     string
	PriceCents int64
	Stock      int32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Review - отзыв пользователя о книге.
type Review struct {
	ID        uuid.UUID
	BookID    uuid.UUID
	UserID    uuid.UUID
	Rating    int32
	Text      string
	CreatedAt time.Time
}
