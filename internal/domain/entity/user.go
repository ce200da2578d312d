package entity

import "time"

// User cuenta del vendedor con acceso al panel.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
