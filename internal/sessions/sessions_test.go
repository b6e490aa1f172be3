package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// startStore — поднимает miniredis и возвращает хранилище поверх него.
func startStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	st, err := NewRedisStore("redis://"+mr.Addr(), 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st, mr
}

func TestPutRefreshToken_OverwritesSlot(t *testing.T) {
	st, _ := startStore(t)

	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, st.PutRefreshToken(ctx, userID, "token-1", time.Hour))
	require.NoError(t, st.PutRefreshToken(ctx, userID, "token-2", time.Hour))

	// Ротация деструктивна: в слоте ровно одно, последнее значение.
	got, err := st.RefreshToken(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "token-2", got)
}

func TestRefreshToken_Missing(t *testing.T) {
	st, _ := startStore(t)

	_, err := st.RefreshToken(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshToken_ExpiresByTTL(t *testing.T) {
	st, mr := startStore(t)

	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, st.PutRefreshToken(ctx, userID, "token", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := st.RefreshToken(ctx, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRefreshToken_Idempotent(t *testing.T) {
	st, _ := startStore(t)

	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, st.PutRefreshToken(ctx, userID, "token", time.Hour))
	require.NoError(t, st.DeleteRefreshToken(ctx, userID))

	// Повторное удаление отсутствующего слота — no-op без ошибки.
	require.NoError(t, st.DeleteRefreshToken(ctx, userID))

	_, err := st.RefreshToken(ctx, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeAccessToken_TTLEqualsRemaining(t *testing.T) {
	st, mr := startStore(t)

	ctx := context.Background()
	token := "access-token-literal"

	require.NoError(t, st.RevokeAccessToken(ctx, token, 10*time.Minute))

	revoked, err := st.IsAccessTokenRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)

	// TTL записи равен остатку жизни токена — никогда не больше.
	require.Equal(t, 10*time.Minute, mr.TTL(revokedPrefix+token))

	// Запись лапсирует одновременно с самим токеном.
	mr.FastForward(10*time.Minute + time.Second)

	revoked, err = st.IsAccessTokenRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRevokeAccessToken_NonPositiveTTL_NoOp(t *testing.T) {
	st, mr := startStore(t)

	ctx := context.Background()

	require.NoError(t, st.RevokeAccessToken(ctx, "expired-token", 0))
	require.NoError(t, st.RevokeAccessToken(ctx, "expired-token", -time.Minute))

	revoked, err := st.IsAccessTokenRevoked(ctx, "expired-token")
	require.NoError(t, err)
	require.False(t, revoked)

	// Хранилище не тронуто вовсе.
	require.Empty(t, mr.Keys())
}

func TestIsAccessTokenRevoked_UnknownToken(t *testing.T) {
	st, _ := startStore(t)

	revoked, err := st.IsAccessTokenRevoked(context.Background(), "never-seen")
	require.NoError(t, err)
	require.False(t, revoked)
}

// Слоты разных пользователей независимы.
func TestRefreshSlots_PerUserIsolation(t *testing.T) {
	st, _ := startStore(t)

	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, st.PutRefreshToken(ctx, alice, "alice-token", time.Hour))
	require.NoError(t, st.PutRefreshToken(ctx, bob, "bob-token", time.Hour))
	require.NoError(t, st.DeleteRefreshToken(ctx, alice))

	_, err := st.RefreshToken(ctx, alice)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := st.RefreshToken(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, "bob-token", got)
}
