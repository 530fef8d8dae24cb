package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pathsapp/backend/internal/model"
)

// MockStore implements Store with per-method hooks for handler tests. A
// call whose hook is unset panics, so a test fails loudly when a handler
// touches the store in a way it did not declare.
type MockStore struct {
	CreateUserFn      func(email, firstName, lastName string, nickname *string, passwordHash string) (*model.User, error)
	GetUserByIDFn     func(id int) (*model.User, error)
	GetUserByEmailFn  func(email string) (*model.User, error)
	IsEmailTakenFn    func(email string) (bool, error)
	IsEmailVerifiedFn func(email string) (bool, error)
	UpdateUserFn      func(id int, fields []Assignment) (bool, error)
	ChangePasswordFn  func(id int, passwordHash string) (bool, error)

	CreateTokenFn       func(userID int) (string, error)
	GetTokenForEmailFn  func(email string) (string, error)
	VerifyUserByTokenFn func(token string) (bool, error)
	DeleteTokenFn       func(token string) (bool, error)

	CreatePathFn  func(ownerID int, title string, description *string, startDate time.Time, start, end model.Location) (*model.Path, error)
	GetPathByIDFn func(id uuid.UUID) (*model.Path, error)
	ListPathsFn   func(skip, limit int) ([]model.Path, error)
	UpdatePathFn  func(id uuid.UUID, fields []Assignment) (bool, error)
	DeletePathFn  func(id uuid.UUID) (*model.Path, error)
	IsPathOwnerFn func(id uuid.UUID, userID int) (bool, error)
}

var _ Store = (*MockStore)(nil)

func (m *MockStore) CreateUser(email, firstName, lastName string, nickname *string, passwordHash string) (*model.User, error) {
	if m.CreateUserFn == nil {
		panic(unexpected("CreateUser"))
	}
	return m.CreateUserFn(email, firstName, lastName, nickname, passwordHash)
}

func (m *MockStore) GetUserByID(id int) (*model.User, error) {
	if m.GetUserByIDFn == nil {
		panic(unexpected("GetUserByID"))
	}
	return m.GetUserByIDFn(id)
}

func (m *MockStore) GetUserByEmail(email string) (*model.User, error) {
	if m.GetUserByEmailFn == nil {
		panic(unexpected("GetUserByEmail"))
	}
	return m.GetUserByEmailFn(email)
}

func (m *MockStore) IsEmailTaken(email string) (bool, error) {
	if m.IsEmailTakenFn == nil {
		panic(unexpected("IsEmailTaken"))
	}
	return m.IsEmailTakenFn(email)
}

func (m *MockStore) IsEmailVerified(email string) (bool, error) {
	if m.IsEmailVerifiedFn == nil {
		panic(unexpected("IsEmailVerified"))
	}
	return m.IsEmailVerifiedFn(email)
}

func (m *MockStore) UpdateUser(id int, fields []Assignment) (bool, error) {
	if m.UpdateUserFn == nil {
		panic(unexpected("UpdateUser"))
	}
	return m.UpdateUserFn(id, fields)
}

func (m *MockStore) ChangePassword(id int, passwordHash string) (bool, error) {
	if m.ChangePasswordFn == nil {
		panic(unexpected("ChangePassword"))
	}
	return m.ChangePasswordFn(id, passwordHash)
}

func (m *MockStore) CreateToken(userID int) (string, error) {
	if m.CreateTokenFn == nil {
		panic(unexpected("CreateToken"))
	}
	return m.CreateTokenFn(userID)
}

func (m *MockStore) GetTokenForEmail(email string) (string, error) {
	if m.GetTokenForEmailFn == nil {
		panic(unexpected("GetTokenForEmail"))
	}
	return m.GetTokenForEmailFn(email)
}

func (m *MockStore) VerifyUserByToken(token string) (bool, error) {
	if m.VerifyUserByTokenFn == nil {
		panic(unexpected("VerifyUserByToken"))
	}
	return m.VerifyUserByTokenFn(token)
}

func (m *MockStore) DeleteToken(token string) (bool, error) {
	if m.DeleteTokenFn == nil {
		panic(unexpected("DeleteToken"))
	}
	return m.DeleteTokenFn(token)
}

func (m *MockStore) CreatePath(ownerID int, title string, description *string, startDate time.Time, start, end model.Location) (*model.Path, error) {
	if m.CreatePathFn == nil {
		panic(unexpected("CreatePath"))
	}
	return m.CreatePathFn(ownerID, title, description, startDate, start, end)
}

func (m *MockStore) GetPathByID(id uuid.UUID) (*model.Path, error) {
	if m.GetPathByIDFn == nil {
		panic(unexpected("GetPathByID"))
	}
	return m.GetPathByIDFn(id)
}

func (m *MockStore) ListPaths(skip, limit int) ([]model.Path, error) {
	if m.ListPathsFn == nil {
		panic(unexpected("ListPaths"))
	}
	return m.ListPathsFn(skip, limit)
}

func (m *MockStore) UpdatePath(id uuid.UUID, fields []Assignment) (bool, error) {
	if m.UpdatePathFn == nil {
		panic(unexpected("UpdatePath"))
	}
	return m.UpdatePathFn(id, fields)
}

func (m *MockStore) DeletePath(id uuid.UUID) (*model.Path, error) {
	if m.DeletePathFn == nil {
		panic(unexpected("DeletePath"))
	}
	return m.DeletePathFn(id)
}

func (m *MockStore) IsPathOwner(id uuid.UUID, userID int) (bool, error) {
	if m.IsPathOwnerFn == nil {
		panic(unexpected("IsPathOwner"))
	}
	return m.IsPathOwnerFn(id, userID)
}

func unexpected(method string) string {
	return fmt.Sprintf("db.MockStore: unexpected call to %s", method)
}
