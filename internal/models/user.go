// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и контактный адрес доставки.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"uid"`         // Уникальный идентификатор пользователя
	Email        string    `json:"email"`       // Электронная почта
	Username     string    `json:"username"`    // Имя пользователя (уникальное)
	PasswordHash string    `json:"-"`           // Хэш пароля пользователя
	Role         string    `json:"role"`        // Роль пользователя, admin или user
	Name         string    `json:"name"`        // Имя и фамилия для доставки
	Address      string    `json:"address"`     // Адрес доставки
	CreatedAt    time.Time `json:"created_at"`  // Дата регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Address  string `json:"address" validate:"required,min=10"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DummyProfileUpdate используется для частичного обновления профиля.
// Поля-указатели: nil означает, что поле не меняется.
type DummyProfileUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=10"`
}
