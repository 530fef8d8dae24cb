package model

import "time"

// User is a registered account as stored in the users table.
// PasswordHash never leaves the server; response shaping happens in the
// packets layer.
type User struct {
	ID            int       `db:"id"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	Nickname      *string   `db:"nickname"`
	Email         string    `db:"email"`
	EmailVerified bool      `db:"email_verified"`
	PasswordHash  string    `db:"password_hash"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
