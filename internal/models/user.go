package models

import (
	"time"

	"github.com/google/uuid"
)

// Role - роль пользователя в системе.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status - статус учетной записи.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// Provider - способ аутентификации учетной записи.
// Парольный вход разрешен только для ProviderLocal.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// User - модель пользователя в системе.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	Provider     Provider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive сообщает, может ли учетная запись пользоваться API.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
