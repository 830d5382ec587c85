package user

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash *string // nil for OAuth-only accounts
	DisplayName  string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
