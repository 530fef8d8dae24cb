package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
)

// tokenBytes yields 32 url-safe characters after base64 encoding.
const tokenBytes = 24

func newTokenString() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateToken mints a random verification token bound to the user and
// returns the stored token string.
func (s *pgStore) CreateToken(userID int) (string, error) {
	raw, err := newTokenString()
	if err != nil {
		return "", err
	}
	var token string
	query := `INSERT INTO tokens (token, user_id) VALUES ($1, $2) RETURNING token;`
	if err := s.db.Get(&token, query, raw, userID); err != nil {
		return "", err
	}
	return token, nil
}

// GetTokenForEmail resolves the pending verification token for the user
// registered under email. Returns "" when none exists.
func (s *pgStore) GetTokenForEmail(email string) (string, error) {
	var token string
	query := `SELECT token FROM tokens WHERE user_id IN (SELECT id FROM users WHERE email = $1);`
	err := s.db.Get(&token, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// VerifyUserByToken flips email_verified for the token's owner. Returns
// false when the token does not resolve to any user.
func (s *pgStore) VerifyUserByToken(token string) (bool, error) {
	query := `UPDATE users SET email_verified = true WHERE id IN (SELECT user_id FROM tokens WHERE token = $1);`
	res, err := s.db.Exec(query, token)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows != 0, nil
}

// DeleteToken discards a consumed token.
func (s *pgStore) DeleteToken(token string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows != 0, nil
}
