package middleware

import (
	"context"

	"github.com/pribylovaa/go-bookstore/internal/models"
)

type ctxKey int

const ctxPrincipal ctxKey = iota

// withPrincipal кладёт аутентифицированного пользователя в контекст запроса.
func withPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFrom возвращает аутентифицированного пользователя запроса.
// ok == false — запрос анонимный (токен не предъявлялся).
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(models.Principal)
	return p, ok
}
