package models

import "time"

// User is a registered account as stored in the users table.
// PasswordHash is a bcrypt hash; the plaintext password never leaves the
// request that carried it.
type User struct {
	ID           string
	FullName     string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
