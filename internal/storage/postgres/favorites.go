package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// AddFavorite добавляет книгу в избранное (идемпотентно).
func (s *Storage) AddFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "storage.postgres.AddFavorite"

	query := `
		INSERT INTO favorites(user_id, book_id, added_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, book_id) DO NOTHING
	`

	if _, err := s.db.Exec(ctx, query, userID, bookID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveFavorite убирает книгу из избранного; отсутствие — не ошибка.
func (s *Storage) RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) error {
	const op = "storage.postgres.RemoveFavorite"

	if _, err := s.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// FavoritesByUser возвращает ID избранных книг, недавние первыми.
func (s *Storage) FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const op = "storage.postgres.FavoritesByUser"

	rows, err := s.db.Query(ctx, `
		SELECT book_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY added_at DESC, book_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}
