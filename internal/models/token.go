package models

import "github.com/google/uuid"

// TokenPair — пара токенов, выдаваемая при аутентификации/обновлении.
//
// Описание:
//   - AccessToken — короткоживущий подписанный токен для доступа к API;
//   - RefreshToken — долгоживущий подписанный токен той же структуры,
//     предъявляется для ротации пары; на сервере хранится в слоте сессии
//     пользователя и перезаписывается при каждой ротации;
//   - TokenType — всегда "Bearer".
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Principal — аутентифицированная личность запроса.
// Строится из проверенного access-токена, живет только в контексте запроса
// и никогда не персистится.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}
