package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/storage"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListBooks возвращает страницу каталога. Лимит нормализуется в [1..100].
func (s *Service) ListBooks(ctx context.Context, limit, offset int32) ([]models.Book, error) {
	const op = "service.books.ListBooks"

	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	books, err := s.storage.ListBooks(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

// BookByID возвращает книгу по идентификатору.
func (s *Service) BookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	const op = "service.books.BookByID"

	book, err := s.storage.BookByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

// AddReview сохраняет отзыв пользователя о книге.
// Повторный отзыв того же пользователя на ту же книгу — ErrAlreadyExists.
func (s *Service) AddReview(ctx context.Context, userID, bookID uuid.UUID, rating int32, text string) (*models.Review, error) {
	const op = "service.books.AddReview"

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	review := &models.Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.SaveReview(ctx, review); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return review, nil
}

// ReviewsByBook возвращает отзывы книги, новые первыми.
func (s *Service) ReviewsByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	const op = "service.books.ReviewsByBook"

	if _, err := s.storage.BookByID(ctx, bookID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.storage.ReviewsByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}
