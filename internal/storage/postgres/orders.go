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

// SaveOrder сохраняет заказ вместе с позициями одной транзакцией.
func (s *Storage) SaveOrder(ctx context.Context, order *models.Order) error {
	const op = "storage.postgres.SaveOrder"

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, status, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.UserID, order.Status, order.TotalCents, order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	for _, it := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, book_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4)
		`, order.ID, it.BookID, it.Quantity, it.PriceCents)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// OrdersByUser возвращает заказы пользователя c позициями, новые первыми.
func (s *Storage) OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	const op = "storage.postgres.OrdersByUser"

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, status, total_cents, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []models.Order
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		index[o.ID] = len(orders)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := s.db.Query(ctx, `
		SELECT oi.order_id, oi.book_id, oi.quantity, oi.price_cents
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uuid.UUID
		var it models.OrderItem
		if err := itemRows.Scan(&orderID, &it.BookID, &it.Quantity, &it.PriceCents); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}
