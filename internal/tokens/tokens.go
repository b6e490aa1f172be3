// tokens реализует кодек сессионных токенов: выпуск и криптографическую
// проверку подписанных HMAC-токенов. Кодек не знает об отзыве и хранилищах —
// это забота пакетов sessions и http/middleware.
//
// Access- и refresh-токены структурно одинаковы и различаются только TTL
// и политикой хранения, поэтому оба выпускаются через Issue.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-bookstore/internal/models"
)

var (
	// ErrInvalidToken — токен некорректен по формату или подписи.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк.
	//
	// КОНТРАКТ Verify: вместе с ErrTokenExpired возвращаются распарсенные
	// claims (подпись уже проверена). Вызывающему нужен вшитый ExpiresAt,
	// чтобы посчитать остаточный TTL для записи об отзыве; истечение срока —
	// восстановимый исход, а не «парсинг не удался».
	ErrTokenExpired = errors.New("token expired")
)

// Claims — проверенные данные сессионного токена.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      models.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec выпускает и проверяет подписанные токены.
// После создания не имеет мутируемого состояния и безопасен для
// неограниченного конкурентного использования.
type Codec struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewCodec создаёт кодек с HS256-подписью.
func NewCodec(secret, issuer string) *Codec {
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		leeway: 5 * time.Second,
	}
}

// Issue выпускает подписанный токен с заданным TTL.
func (c *Codec) Issue(userID uuid.UUID, email string, role models.Role, ttl time.Duration) (string, error) {
	const op = "tokens.Issue"

	now := time.Now().UTC()
	claims := tokenClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			// jti гарантирует уникальность токена даже при выпуске
			// нескольких в одну секунду (ротация требует token != prev).
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
//
// Исходы:
//   - nil — claims валидны;
//   - ErrTokenExpired — подпись верна, срок истёк; claims тем не менее
//     возвращаются (см. контракт у переменной ошибки);
//   - ErrInvalidToken — формат/подпись/issuer некорректны; claims == nil.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	const op = "tokens.Verify"

	parsed := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, parsed,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithIssuer(c.issuer),
	)

	if err != nil {
		// Истечение срока — отдельный восстановимый исход: подпись уже
		// сошлась, поэтому claims можно отдать вызывающему.
		if errors.Is(err, jwt.ErrTokenExpired) && token != nil {
			claims, convErr := fromTokenClaims(parsed)
			if convErr != nil {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return claims, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, err := fromTokenClaims(parsed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims, nil
}

// fromTokenClaims конвертирует JWT-claims во внутреннюю структуру.
func fromTokenClaims(tc *tokenClaims) (*Claims, error) {
	uid, err := uuid.Parse(tc.Subject)
	if err != nil {
		return nil, err
	}

	if tc.IssuedAt == nil || tc.ExpiresAt == nil {
		return nil, errors.New("missing iat/exp")
	}

	return &Claims{
		UserID:    uid,
		Email:     tc.Email,
		Role:      models.Role(tc.Role),
		IssuedAt:  tc.IssuedAt.Time,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}
