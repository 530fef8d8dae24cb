// Package db owns all persistence access. Route handlers never issue raw
// queries; they go through the Store interface, which is constructed once in
// main and injected everywhere it is needed.
//
// Store operations signal "not found" with an absent result (nil pointer,
// false, empty string), never with an error. Anything else the driver
// returns propagates to the caller untouched.
package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pathsapp/backend/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, firstName, lastName string, nickname *string, passwordHash string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	IsEmailTaken(email string) (bool, error)
	IsEmailVerified(email string) (bool, error)
	UpdateUser(id int, fields []Assignment) (bool, error)
	ChangePassword(id int, passwordHash string) (bool, error)

	// token functions
	CreateToken(userID int) (string, error)
	GetTokenForEmail(email string) (string, error)
	VerifyUserByToken(token string) (bool, error)
	DeleteToken(token string) (bool, error)

	// path functions
	CreatePath(ownerID int, title string, description *string, startDate time.Time, start, end model.Location) (*model.Path, error)
	GetPathByID(id uuid.UUID) (*model.Path, error)
	ListPaths(skip, limit int) ([]model.Path, error)
	UpdatePath(id uuid.UUID, fields []Assignment) (bool, error)
	DeletePath(id uuid.UUID) (*model.Path, error)
	IsPathOwner(id uuid.UUID, userID int) (bool, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
