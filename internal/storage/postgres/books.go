package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// ListBooks возвращает срез каталога, новые первыми.
func (s *Storage) ListBooks(ctx context.Context, limit, offset int32) ([]models.Book, error) {
	const op = "storage.postgres.ListBooks"

	query := `
		SELECT id, title, author, price_cents, stock, created_at, updated_at
		FROM books
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	books := make([]models.Book, 0, limit)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PriceCents, &b.Stock, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

// BookByID находит книгу по ID.
func (s *Storage) BookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	const op = "storage.postgres.BookByID"

	query := `
		SELECT id, title, author, price_cents, stock, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var b models.Book
	err := s.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.PriceCents, &b.Stock, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

// SaveReview сохраняет отзыв; пара (book_id, user_id) уникальна.
func (s *Storage) SaveReview(ctx context.Context, review *models.Review) error {
	const op = "storage.postgres.SaveReview"

	query := `
		INSERT INTO reviews(id, book_id, user_id, rating, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(ctx, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Rating,
		review.Text,
		review.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ReviewsByBook возвращает отзывы книги, новые первыми.
func (s *Storage) ReviewsByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	const op = "storage.postgres.ReviewsByBook"

	query := `
		SELECT id, book_id, user_id, rating, review_text, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := s.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}
