package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// AddFavorite добавляет книгу в избранное пользователя (идемпотентно).
func (s *Service) AddFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "service.favorites.AddFavorite"

	if err := s.storage.AddFavorite(ctx, userID, bookID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveFavorite убирает книгу из избранного (идемпотентно).
func (s *Service) RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "service.favorites.RemoveFavorite"

	if err := s.storage.RemoveFavorite(ctx, userID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Favorites возвращает ID избранных книг пользователя.
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const op = "service.favorites.Favorites"

	ids, err := s.storage.FavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}
