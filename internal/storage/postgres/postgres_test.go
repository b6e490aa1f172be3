package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/storage"
)

// Файл интеграционных тестов для пакета postgres:
// - поднимает реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяет миграции из ./migrations;
// - проверяет happy-path репозиториев, уникальность и сценарии отсутствия записей.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает временный экземпляр PostgreSQL через testcontainers-go,
// применяет миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, m := range []string{"1_init_users.up.sql", "2_init_catalog.up.sql", "3_init_orders.up.sql"} {
		_, err = pool.Exec(ctx, readMigration(t, m))
		require.NoError(t, err, "apply migration %s", m)
	}

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func seedUser(t *testing.T, st *Storage, email string) *models.User {
	t.Helper()

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		Provider:     models.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.SaveUser(context.Background(), u))
	return u
}

func seedBook(t *testing.T, st *Storage, title string, priceCents int64) *models.Book {
	t.Helper()

	book := &models.Book{
		ID:         uuid.New(),
		Title:      title,
		Author:     "Author",
		PriceCents: priceCents,
		Stock:      10,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := st.db.Exec(context.Background(),
		`INSERT INTO books(id, title, author, price_cents, stock, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		book.ID, book.Title, book.Author, book.PriceCents, book.Stock, book.CreatedAt, book.UpdatedAt,
	)
	require.NoError(t, err)
	return book
}

func TestIntegration_SaveUser_And_Lookup_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "User@Example.Com")

	gotByEmail, err := st.UserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, gotByEmail.ID)
	require.Equal(t, models.RoleUser, gotByEmail.Role)
	require.Equal(t, models.StatusActive, gotByEmail.Status)

	gotByID, err := st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, gotByID.ID)
}

func TestIntegration_SaveUser_UniqueEmail_CaseInsensitive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	seedUser(t, st, "user@example.com")

	dup := &models.User{
		ID:           uuid.New(),
		Email:        "USER@example.com",
		PasswordHash: "hash2",
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		Provider:     models.ProviderLocal,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	err := st.SaveUser(context.Background(), dup)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_UserByEmail_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UserByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_UpdateUserEmail(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "old@example.com")
	other := seedUser(t, st, "taken@example.com")

	updated, err := st.UpdateUserEmail(context.Background(), u.ID, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", updated.Email)

	// Конфликт с чужим email.
	_, err = st.UpdateUserEmail(context.Background(), u.ID, other.Email)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Несуществующий пользователь.
	_, err = st.UpdateUserEmail(context.Background(), uuid.New(), "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Catalog_ListAndGet(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	a := seedBook(t, st, "A", 1500)
	seedBook(t, st, "B", 700)

	books, err := st.ListBooks(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, books, 2)

	got, err := st.BookByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.Equal(t, "A", got.Title)
	require.Equal(t, int64(1500), got.PriceCents)

	_, err = st.BookByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Reviews_SaveAndDuplicate(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "reader@example.com")
	book := seedBook(t, st, "A", 1500)

	review := &models.Review{
		ID:        uuid.New(),
		BookID:    book.ID,
		UserID:    u.ID,
		Rating:    5,
		Text:      "great",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.SaveReview(context.Background(), review))

	// Повторный отзыв того же пользователя.
	dup := *review
	dup.ID = uuid.New()
	err := st.SaveReview(context.Background(), &dup)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Отзыв на несуществующую книгу.
	orphan := *review
	orphan.ID = uuid.New()
	orphan.BookID = uuid.New()
	err = st.SaveReview(context.Background(), &orphan)
	require.ErrorIs(t, err, storage.ErrNotFound)

	reviews, err := st.ReviewsByBook(context.Background(), book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Equal(t, "great", reviews[0].Text)
}

func TestIntegration_Cart_UpsertAndClear(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "buyer@example.com")
	book := seedBook(t, st, "A", 1500)

	item := &models.CartItem{UserID: u.ID, BookID: book.ID, Quantity: 1, AddedAt: time.Now().UTC()}
	require.NoError(t, st.UpsertCartItem(context.Background(), item))

	// Upsert обновляет количество, не создавая дубликат.
	item.Quantity = 3
	require.NoError(t, st.UpsertCartItem(context.Background(), item))

	items, err := st.CartItems(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int32(3), items[0].Quantity)

	// Позиция с несуществующей книгой.
	orphan := &models.CartItem{UserID: u.ID, BookID: uuid.New(), Quantity: 1, AddedAt: time.Now().UTC()}
	require.ErrorIs(t, st.UpsertCartItem(context.Background(), orphan), storage.ErrNotFound)

	require.NoError(t, st.ClearCart(context.Background(), u.ID))
	items, err = st.CartItems(context.Background(), u.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestIntegration_Orders_SaveAndList(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "buyer@example.com")
	a := seedBook(t, st, "A", 1500)
	b := seedBook(t, st, "B", 700)

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     u.ID,
		Status:     models.OrderStatusCreated,
		TotalCents: 3700,
		Items: []models.OrderItem{
			{BookID: a.ID, Quantity: 2, PriceCents: 1500},
			{BookID: b.ID, Quantity: 1, PriceCents: 700},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.SaveOrder(context.Background(), order))

	orders, err := st.OrdersByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, int64(3700), orders[0].TotalCents)
	require.Len(t, orders[0].Items, 2)
}

func TestIntegration_Favorites_Idempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "fan@example.com")
	book := seedBook(t, st, "A", 1500)

	require.NoError(t, st.AddFavorite(context.Background(), u.ID, book.ID))
	// Повтор не ошибка и не дубликат.
	require.NoError(t, st.AddFavorite(context.Background(), u.ID, book.ID))

	ids, err := st.FavoritesByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{book.ID}, ids)

	require.NoError(t, st.RemoveFavorite(context.Background(), u.ID, book.ID))
	// Удаление отсутствующего — no-op.
	require.NoError(t, st.RemoveFavorite(context.Background(), u.ID, book.ID))

	ids, err = st.FavoritesByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Empty(t, ids)
}
