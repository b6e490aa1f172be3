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

// Cart возвращает корзину пользователя.
func (s *Service) Cart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	const op = "service.cart.Cart"

	items, err := s.storage.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// AddToCart кладет книгу в корзину или обновляет количество позиции.
func (s *Service) AddToCart(ctx context.Context, userID, bookID uuid.UUID, quantity int32) error {
	const op = "service.cart.AddToCart"

	if quantity <= 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	item := &models.CartItem{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
		AddedAt:  time.Now().UTC(),
	}

	if err := s.storage.UpsertCartItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveFromCart убирает позицию из корзины (идемпотентно).
func (s *Service) RemoveFromCart(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "service.cart.RemoveFromCart"

	if err := s.storage.DeleteCartItem(ctx, userID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
