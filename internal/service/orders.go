package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// Checkout оформляет заказ из текущей корзины пользователя.
//
// Цены фиксируются на момент оформления: позиция заказа хранит цену из
// каталога, последующие изменения каталога на заказ не влияют. После
// успешного сохранения корзина очищается.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	const op = "service.orders.Checkout"

	items, err := s.storage.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    models.OrderStatusCreated,
		Items:     make([]models.OrderItem, 0, len(items)),
		CreatedAt: time.Now().UTC(),
	}

	for _, item := range items {
		book, err := s.storage.BookByID(ctx, item.BookID)
		if err != nil {
			// Книга могла исчезнуть из каталога после добавления в корзину.
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		order.Items = append(order.Items, models.OrderItem{
			BookID:     book.ID,
			Quantity:   item.Quantity,
			PriceCents: book.PriceCents,
		})
		order.TotalCents += book.PriceCents * int64(item.Quantity)
	}

	if err := s.storage.SaveOrder(ctx, order); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.ClearCart(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

// Orders возвращает историю заказов пользователя, новые первыми.
func (s *Service) Orders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	const op = "service.orders.Orders"

	orders, err := s.storage.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}
