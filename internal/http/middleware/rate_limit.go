package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/ratelimit"
)

// RateLimit ограничивает частоту запросов по паре (клиент, путь).
//
// Эндпоинты аутентификации исключены: залоченный лимитом клиент должен
// сохранять возможность войти или обновить сессию.
func RateLimit(limiter *ratelimit.Limiter, exempt ...string) Middleware {
	exemptSet := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			key := ratelimit.Key{
				Identity: clientIdentity(r),
				Path:     r.URL.Path,
			}
			if !limiter.Allow(key) {
				httperr.Write(w, r, http.StatusTooManyRequests, httperr.CodeTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIdentity определяет клиента: первый адрес X-Forwarded-For,
// иначе host из peer-адреса соединения.
func clientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			first = xff[:idx]
		}
		if identity := strings.TrimSpace(first); identity != "" {
			return identity
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
