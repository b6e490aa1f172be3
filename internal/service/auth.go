package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/pkg/log"
	"github.com/pribylovaa/go-bookstore/internal/pkg/redact"
	"github.com/pribylovaa/go-bookstore/internal/sessions"
	"github.com/pribylovaa/go-bookstore/internal/storage"
	"github.com/pribylovaa/go-bookstore/internal/tokens"
)

// RegisterUser регистрирует нового пользователя с парольным входом.
func (s *Service) RegisterUser(ctx context.Context, email, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		Provider:     models.ProviderLocal,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// Login выполняет вход по email+пароль.
//
// Отсутствующий пользователь, чужой провайдер и неверный пароль неразличимы
// снаружи (всегда ErrInvalidCredentials): существование учетной записи
// не раскрывается.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	// Парольный вход только для локальных учеток.
	if user.Provider != models.ProviderLocal {
		lg.Warn("login_non_local_provider",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// Refresh обновляет пару токенов по refresh-токену (ротация).
//
// Ротация деструктивна: слот перезаписывается, предъявленный refresh-токен
// становится навсегда непригодным. Сравнение со значением слота — единственная
// защита от повтора уже ротированного токена. Два конкурентных Refresh одного
// пользователя могут оба пройти сравнение до перезаписи; побеждает последняя
// запись, пара проигравшего умрёт на следующем обновлении.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx)

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	stored, err := s.sessions.RefreshToken(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			lg.Warn("refresh_slot_missing",
				slog.String("op", op),
				slog.String("user_id", claims.UserID.String()),
			)
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrLoginRequired)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		lg.Warn("refresh_token_mismatch",
			slog.String("op", op),
			slog.String("user_id", claims.UserID.String()),
		)
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	// Статус учетной записи перепроверяется на каждой ротации.
	user, err := s.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrLoginRequired)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive() {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrAccountInactive)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, user.ID, nil
}

// Logout завершает сессию по заголовку Authorization.
//
// Уже истёкший access-токен не считается ошибкой: такая сессия фактически
// завершена, слот всё равно удаляется (идемпотентно), а запись об отзыве
// не создаётся — остаток жизни токена неположителен.
func (s *Service) Logout(ctx context.Context, authorizationHeader string) error {
	const op = "service.auth.Logout"

	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	claims, err := s.codec.Verify(token)
	if err != nil && !errors.Is(err, tokens.ErrTokenExpired) {
		return fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if err := s.sessions.DeleteRefreshToken(ctx, claims.UserID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Запись об отзыве живет ровно столько, сколько осталось жить токену:
	// никогда не дольше и не создается вовсе при неположительном остатке.
	remaining := time.Until(claims.ExpiresAt)
	if remaining > 0 {
		if err := s.sessions.RevokeAccessToken(ctx, token, remaining); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// bearerToken извлекает токен из заголовка вида "Bearer <token>".
func bearerToken(header string) (string, error) {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем (bcrypt, константное время).
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}

// issueTokenPair выпускает пару access+refresh и безусловно перезаписывает
// слот refresh-токена пользователя: в любой момент у пользователя не больше
// одной живой сессии.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	lg := log.From(ctx)

	accessToken, err := s.codec.Issue(user.ID, user.Email, user.Role, s.cfg.AccessTokenTTL)
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.codec.Issue(user.ID, user.Email, user.Role, s.cfg.RefreshTokenTTL)
	if err != nil {
		lg.Error("refresh_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.PutRefreshToken(ctx, user.ID, refreshToken, s.cfg.RefreshTokenTTL); err != nil {
		lg.Error("refresh_slot_write_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}
