package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-bookstore/internal/models"
)

func testCodec() *Codec {
	return NewCodec("unit-secret", "bookstore")
}

func TestIssueVerify_OK(t *testing.T) {
	t.Parallel()

	c := testCodec()
	uid := uuid.New()

	token, err := c.Issue(uid, "user@example.com", models.RoleUser, 30*time.Second)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := c.Verify(token)
	require.NoError(t, err)
	require.Equal(t, uid, claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
	require.WithinDuration(t, time.Now().Add(30*time.Second), claims.ExpiresAt, 2*time.Second)
}

// Истёкший токен — отдельный исход: ErrTokenExpired И распарсенные claims,
// чтобы вызывающий мог посчитать остаточный TTL.
func TestVerify_Expired_ReturnsClaims(t *testing.T) {
	t.Parallel()

	c := testCodec()
	uid := uuid.New()

	token, err := c.Issue(uid, "user@example.com", models.RoleUser, -time.Hour)
	require.NoError(t, err)

	claims, err := c.Verify(token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, claims)
	require.Equal(t, uid, claims.UserID)
	require.True(t, claims.ExpiresAt.Before(time.Now()))
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := testCodec()

	token, err := c.Issue(uuid.New(), "user@example.com", models.RoleUser, time.Minute)
	require.NoError(t, err)

	// Портим подпись (последний сегмент).
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := "AAAA"
	if strings.HasPrefix(parts[2], tampered) {
		tampered = "BBBB"
	}
	parts[2] = tampered + parts[2][4:]

	claims, err := c.Verify(strings.Join(parts, "."))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, claims)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	c := testCodec()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := c.Verify(tok)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.Nil(t, claims)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewCodec("secret-a", "bookstore").Issue(uuid.New(), "u@e.com", models.RoleUser, time.Minute)
	require.NoError(t, err)

	_, err = NewCodec("secret-b", "bookstore").Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	token, err := NewCodec("unit-secret", "other-service").Issue(uuid.New(), "u@e.com", models.RoleUser, time.Minute)
	require.NoError(t, err)

	_, err = testCodec().Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Подписанный другим алгоритмом токен отклоняется даже с верным секретом.
func TestVerify_RejectsNoneAlg(t *testing.T) {
	t.Parallel()

	claims := tokenClaims{
		Email: "u@e.com",
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "bookstore",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testCodec().Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	claims := tokenClaims{
		Email: "u@e.com",
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "bookstore",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = testCodec().Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
