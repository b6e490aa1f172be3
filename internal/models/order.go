package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem - позиция корзины пользователя.
type CartItem struct {
	UserID   uuid.UUID
	BookID   uuid.UUID
	Quantity int32
	AddedAt  time.Time
}

// OrderStatus - статус заказа.
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
)

// Order - заказ, собранный из корзины.
type Order struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	CreatedAt  time.Time
}

// OrderItem - позиция заказа с зафиксированной ценой.
type OrderItem struct {
	BookID     uuid.UUID
	Quantity   int32
	PriceCents int64
}
