// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. PasswordHash holds a bcrypt digest, never the plaintext.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
