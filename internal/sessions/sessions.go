// sessions — внешнее хранилище сессионного состояния на Redis:
// слот refresh-токена (ровно один на пользователя) и множество отозванных
// access-токенов с ограниченным временем жизни.
//
// Мультиплексирование по префиксам ключей — деталь реализации и наружу
// не выходит: вызывающие работают только с типизированными операциями Store.
// Истечение записей делегировано нативному TTL Redis.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound — слот refresh-токена отсутствует (logout или истёк по TTL).
var ErrNotFound = errors.New("not found")

// Store — типизированный контракт хранилища сессий.
//
// Атомарность гарантируется в пределах одного ключа (семантика Redis);
// межключевых транзакций нет и не требуется.
type Store interface {
	// PutRefreshToken безусловно перезаписывает слот refresh-токена пользователя.
	PutRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	// RefreshToken возвращает текущее значение слота или ErrNotFound.
	RefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	// DeleteRefreshToken удаляет слот; отсутствие слота — не ошибка.
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
	// RevokeAccessToken помечает access-токен отозванным на остаток его
	// жизни. При ttlRemaining <= 0 — no-op: запись об отзыве никогда
	// не переживает сам токен.
	RevokeAccessToken(ctx context.Context, token string, ttlRemaining time.Duration) error
	// IsAccessTokenRevoked проверяет наличие записи об отзыве.
	IsAccessTokenRevoked(ctx context.Context, token string) (bool, error)
	// Close закрывает клиент Redis.
	Close() error
}

const (
	refreshPrefix = "auth:rt:"
	revokedPrefix = "auth:bl:"
)

type redisStore struct {
	rdb *redis.Client
	// opTimeout ограничивает каждый сетевой hop к Redis, чтобы медленное
	// хранилище не подвешивало запрос.
	opTimeout time.Duration
}

// NewRedisStore создаёт хранилище из URL (например, redis://:pass@host:6379/0).
// opTimeout <= 0 отключает ограничение на операцию.
func NewRedisStore(redisURL string, opTimeout time.Duration) (Store, error) {
	const op = "sessions.NewRedisStore"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &redisStore{rdb: rdb, opTimeout: opTimeout}, nil
}

func (s *redisStore) refreshKey(userID uuid.UUID) string { return refreshPrefix + userID.String() }
func (s *redisStore) revokedKey(token string) string     { return revokedPrefix + token }

// opCtx навешивает ограниченный дедлайн на одно обращение к Redis.
func (s *redisStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *redisStore) PutRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	const op = "sessions.PutRefreshToken"

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.rdb.Set(ctx, s.refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *redisStore) RefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "sessions.RefreshToken"

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	token, err := s.rdb.Get(ctx, s.refreshKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (s *redisStore) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const op = "sessions.DeleteRefreshToken"

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// DEL несуществующего ключа — штатный случай (идемпотентность).
	if err := s.rdb.Del(ctx, s.refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *redisStore) RevokeAccessToken(ctx context.Context, token string, ttlRemaining time.Duration) error {
	const op = "sessions.RevokeAccessToken"

	if ttlRemaining <= 0 {
		return nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// TTL записи строго равен остатку жизни токена.
	if err := s.rdb.Set(ctx, s.revokedKey(token), "1", ttlRemaining).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *redisStore) IsAccessTokenRevoked(ctx context.Context, token string) (bool, error) {
	const op = "sessions.IsAccessTokenRevoked"

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	n, err := s.rdb.Exists(ctx, s.revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }
