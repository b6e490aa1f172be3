package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	logctx "github.com/pribylovaa/go-bookstore/internal/pkg/log"
)

// Recover перехватывает panic, конвертирует в 500/INTERNAL и пишет
// унифицированный конверт. Детали паники не утекают на клиент.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					httperr.Write(w, r, http.StatusInternalServerError, httperr.CodeInternal, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
