package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/models"
	logctx "github.com/pribylovaa/go-bookstore/internal/pkg/log"
	"github.com/pribylovaa/go-bookstore/internal/pkg/redact"
	"github.com/pribylovaa/go-bookstore/internal/sessions"
	"github.com/pribylovaa/go-bookstore/internal/tokens"
)

// AuthGateway аутентифицирует запрос по заголовку Authorization.
//
// Правила:
//   - заголовка нет — запрос проходит анонимным: решение "нужна ли здесь
//     аутентификация" принимает хендлер, а не мидлвар;
//   - токен отозван — 401 TOKEN_REVOKED (проверка идёт первой: отозванный
//     токен не проходит даже будучи криптографически валидным);
//   - срок истёк — 401 TOKEN_EXPIRED;
//   - формат/подпись некорректны — 401 UNAUTHORIZED;
//   - токен валиден — Principal кладётся в контекст запроса.
//
// Сбой стора отзыва сворачивается в обычный 401: деталь инфраструктуры
// не раскрывается, запрос с непроверяемым токеном не пропускается.
func AuthGateway(codec *tokens.Codec, store sessions.Store) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			revoked, err := store.IsAccessTokenRevoked(r.Context(), token)
			if err != nil {
				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "revocation_check_failed",
					slog.String("path", r.URL.Path),
					slog.String("err", err.Error()),
				)
				httperr.Write(w, r, http.StatusUnauthorized, httperr.CodeUnauthorized, "invalid token")
				return
			}
			if revoked {
				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "revoked_token_presented",
					slog.String("path", r.URL.Path),
					slog.String("token", redact.Token()),
				)
				httperr.Write(w, r, http.StatusUnauthorized, httperr.CodeTokenRevoked, "token revoked")
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				if errors.Is(err, tokens.ErrTokenExpired) {
					httperr.Write(w, r, http.StatusUnauthorized, httperr.CodeTokenExpired, "token expired")
					return
				}

				httperr.Write(w, r, http.StatusUnauthorized, httperr.CodeUnauthorized, "invalid token")
				return
			}

			ctx := withPrincipal(r.Context(), models.Principal{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer возвращает токен из "Bearer <token>" или пустую строку.
func extractBearer(header string) string {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
