// storage задаёт контракты работы с базой данных и ошибки-сентинелы,
// на которые опирается сервисный слой.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/книга/заказ).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/повторный отзыв).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage — справочник пользователей.
// Аутентификационный слой использует только выборки по email/ID и статус.
type UserStorage interface {
	// SaveUser создает нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateUserEmail меняет email пользователя.
	UpdateUserEmail(ctx context.Context, id uuid.UUID, email string) (*models.User, error)
}

// CatalogStorage — операции над каталогом книг.
type CatalogStorage interface {
	// ListBooks возвращает срез каталога.
	ListBooks(ctx context.Context, limit, offset int32) ([]models.Book, error)
	// BookByID находит книгу по ID.
	BookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
}

// ReviewStorage — операции над отзывами.
type ReviewStorage interface {
	// SaveReview сохраняет отзыв; повторный отзыв пользователя на ту же
	// книгу — ErrAlreadyExists.
	SaveReview(ctx context.Context, review *models.Review) error
	// ReviewsByBook возвращает отзывы книги.
	ReviewsByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error)
}

// CartStorage — операции над корзиной.
type CartStorage interface {
	// CartItems возвращает корзину пользователя.
	CartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	// UpsertCartItem добавляет позицию или обновляет количество.
	UpsertCartItem(ctx context.Context, item *models.CartItem) error
	// DeleteCartItem удаляет позицию; отсутствие — не ошибка.
	DeleteCartItem(ctx context.Context, userID, bookID uuid.UUID) error
	// ClearCart очищает корзину пользователя.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// OrderStorage — операции над заказами.
type OrderStorage interface {
	// SaveOrder сохраняет заказ вместе с позициями (одной транзакцией).
	SaveOrder(ctx context.Context, order *models.Order) error
	// OrdersByUser возвращает заказы пользователя, новые первыми.
	OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// FavoriteStorage — операции над избранным.
type FavoriteStorage interface {
	// AddFavorite добавляет книгу в избранное (идемпотентно).
	AddFavorite(ctx context.Context, userID, bookID uuid.UUID) error
	// RemoveFavorite убирает книгу из избранного; отсутствие — не ошибка.
	RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) error
	// FavoritesByUser возвращает ID избранных книг.
	FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	CatalogStorage
	ReviewStorage
	CartStorage
	OrderStorage
	FavoriteStorage
	Close()
}
