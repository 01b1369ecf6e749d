package entity

import "time"

// User representa al dueño de una cuenta. Tiene como máximo un Business.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca se serializa
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
