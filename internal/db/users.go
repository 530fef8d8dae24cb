package db

import (
	"database/sql"
	"errors"

	"github.com/pathsapp/backend/internal/model"
)

// CreateUser inserts a new user and returns the stored row. Email
// verification starts out false; a uniqueness race on email surfaces as a
// constraint violation from the driver.
func (s *pgStore) CreateUser(email, firstName, lastName string, nickname *string, passwordHash string) (*model.User, error) {
	var u model.User
	query := `
	INSERT INTO users (email, first_name, last_name, nickname, password_hash)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, first_name, last_name, nickname, email, email_verified, password_hash, created_at, updated_at;
	`
	if err := s.db.Get(&u, query, email, firstName, lastName, nickname, passwordHash); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches a user by primary key. Returns nil, nil when absent.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, first_name, last_name, nickname, email, email_verified, password_hash, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := s.db.Get(&u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email. Returns nil, nil when absent.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, first_name, last_name, nickname, email, email_verified, password_hash, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := s.db.Get(&u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) IsEmailTaken(email string) (bool, error) {
	var taken bool
	err := s.db.Get(&taken, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`, email)
	return taken, err
}

func (s *pgStore) IsEmailVerified(email string) (bool, error) {
	var verified bool
	err := s.db.Get(&verified, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND email_verified = true);`, email)
	return verified, err
}

// UpdateUser applies a sparse field update. Returns false when the user does
// not exist.
func (s *pgStore) UpdateUser(id int, fields []Assignment) (bool, error) {
	return s.execUpdate("users", id, fields)
}

// ChangePassword replaces the stored password hash.
func (s *pgStore) ChangePassword(id int, passwordHash string) (bool, error) {
	res, err := s.db.Exec(`UPDATE users SET password_hash=$2 WHERE id=$1`, id, passwordHash)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows != 0, nil
}
