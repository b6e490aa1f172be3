package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-bookstore/internal/httperr"
	"github.com/pribylovaa/go-bookstore/internal/http/middleware"
	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/service"
)

// Handlers агрегирует зависимости REST-слоя.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// requirePrincipal возвращает аутентифицированного пользователя запроса
// либо пишет 401 и возвращает ok == false. Решение "нужна ли здесь
// аутентификация" принимает хендлер, мидлвар лишь валидирует токен.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httperr.Write(w, r, http.StatusUnauthorized, httperr.CodeUnauthorized, "authentication required")
		return models.Principal{}, false
	}

	return p, true
}
