// service содержит бизнес-логику бэкенда магазина: аутентификацию
// (login/refresh/logout) и тонкие CRUD-операции каталога, корзины,
// заказов, отзывов и избранного поверх интерфейсов storage и sessions.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при
//     условии, что хранилища (storage.Storage, sessions.Store) потокобезопасны.
//   - Ошибки возвращаются сентинелами и маппятся единственной границей
//     httperr на HTTP-статусы (см. комментарии к переменным ниже).
//   - Ретраев нет нигде: каждая ошибка терминальна с точки зрения сервера.
package service

import (
	"errors"

	"github.com/pribylovaa/go-bookstore/internal/config"
	"github.com/pribylovaa/go-bookstore/internal/sessions"
	"github.com/pribylovaa/go-bookstore/internal/storage"
	"github.com/pribylovaa/go-bookstore/internal/tokens"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна, пользователь не
	// найден или вход для его провайдера не парольный. Намеренно одна
	// ошибка на все три случая: существование учетной записи не раскрываем.
	// HTTP: 401 UNAUTHORIZED.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи
	// либо не совпал со значением слота при ротации. HTTP: 401 UNAUTHORIZED.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Отдельный код ради
	// клиентского UX (клиент знает, что пора на refresh).
	// HTTP: 401 TOKEN_EXPIRED.
	ErrTokenExpired = errors.New("token expired")

	// ErrLoginRequired — слот refresh-токена пуст (logout или истёк):
	// обновление невозможно, нужен повторный вход. HTTP: 401 UNAUTHORIZED.
	ErrLoginRequired = errors.New("login required")

	// ErrAccountInactive — учетная запись аутентифицирована, но не активна.
	// HTTP: 403 FORBIDDEN.
	ErrAccountInactive = errors.New("account inactive")

	// ErrInvalidAuthHeader — заголовок Authorization отсутствует или
	// не вида "Bearer <token>". HTTP: 400 BAD_REQUEST.
	ErrInvalidAuthHeader = errors.New("invalid authorization header")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// HTTP: 400 BAD_REQUEST.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политикам сложности.
	// HTTP: 400 BAD_REQUEST.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. HTTP: 400 BAD_REQUEST.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// HTTP: 409 CONFLICT.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNotFound — сущность CRUD-поверхности не найдена. HTTP: 404 NOT_FOUND.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists — конфликт уникальности CRUD-поверхности
	// (повторный отзыв и т.п.). HTTP: 409 CONFLICT.
	ErrAlreadyExists = errors.New("already exists")

	// ErrEmptyCart — попытка оформить заказ из пустой корзины.
	// HTTP: 400 BAD_REQUEST.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidArgument — некорректные входные данные CRUD-поверхности.
	// HTTP: 400 BAD_REQUEST.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service описывает бизнес-логику бэкенда.
type Service struct {
	storage  storage.Storage
	sessions sessions.Store
	codec    *tokens.Codec
	cfg      config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, sess sessions.Store, codec *tokens.Codec, cfg config.AuthConfig) *Service {
	return &Service{
		storage:  st,
		sessions: sess,
		codec:    codec,
		cfg:      cfg,
	}
}
