package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// CartItems возвращает корзину пользователя.
func (s *Storage) CartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	const op = "storage.postgres.CartItems"

	query := `
		SELECT user_id, book_id, quantity, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at, book_id
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.UserID, &it.BookID, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpsertCartItem добавляет позицию или обновляет количество.
func (s *Storage) UpsertCartItem(ctx context.Context, item *models.CartItem) error {
	const op = "storage.postgres.UpsertCartItem"

	query := `
		INSERT INTO cart_items(user_id, book_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`

	_, err := s.db.Exec(ctx, query, item.UserID, item.BookID, item.Quantity, item.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteCartItem удаляет позицию; отсутствие — не ошибка.
func (s *Storage) DeleteCartItem(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "storage.postgres.DeleteCartItem"

	if _, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND book_id = $2`, userID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClearCart очищает корзину пользователя.
func (s *Storage) ClearCart(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.ClearCart"

	if _, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
