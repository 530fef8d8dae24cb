package model

import "time"

// Token is a single-use email verification token bound to one user.
// It is deleted after a successful verification.
type Token struct {
	ID        int       `db:"id"`
	Token     string    `db:"token"`
	UserID    int       `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
