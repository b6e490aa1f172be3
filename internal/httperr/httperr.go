// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (сентинел),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый код;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: комментарии к сентинелам в internal/service.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pribylovaa/go-bookstore/internal/service"
)

// Машиночитаемые коды ошибок для фронта.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeTokenRevoked    = "TOKEN_REVOKED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadRequest      = "BAD_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL"
)

// Response — единый формат ошибки для фронта.
// Details присутствует только когда есть что сказать сверх message.
type Response struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
}

// FromError конвертирует ошибку сервисного слоя в HTTP-статус, код и message.
//
// err == nil — программная ошибка вызова: возвращаем 500/INTERNAL,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
// Неопознанная ошибка тоже сворачивается в 500/INTERNAL без утечки деталей.
func FromError(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, CodeInternal, "internal error"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, CodeTokenExpired, "token expired"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, CodeUnauthorized, "invalid token"
	case errors.Is(err, service.ErrLoginRequired):
		return http.StatusUnauthorized, CodeUnauthorized, "login required"
	case errors.Is(err, service.ErrAccountInactive):
		return http.StatusForbidden, CodeForbidden, "account inactive"
	case errors.Is(err, service.ErrInvalidAuthHeader):
		return http.StatusBadRequest, CodeBadRequest, "invalid authorization header"
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest, CodeBadRequest, "invalid email format"
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, CodeBadRequest, "password is too weak"
	case errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, CodeBadRequest, "password is empty"
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, CodeBadRequest, "cart is empty"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, CodeBadRequest, "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "not found"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, CodeConflict, "email already taken"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, CodeConflict, "already exists"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal error"
	}
}

// WriteError — хелпер для HTTP-хендлеров: маппит ошибку сервисного слоя
// и пишет единый конверт.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := FromError(err)
	Write(w, r, status, code, message)
}

// Write пишет конверт с явным статусом/кодом (для middleware, которые
// формируют ошибку без участия сервисного слоя).
func Write(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := Response{
		Timestamp: time.Now().UTC(),
		Path:      r.URL.Path,
		Status:    status,
		Code:      code,
		Message:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
