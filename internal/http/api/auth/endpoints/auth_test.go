package endpoints_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathsapp/backend/internal/db"
	"github.com/pathsapp/backend/internal/http/api"
	"github.com/pathsapp/backend/internal/http/api/auth/endpoints"
	"github.com/pathsapp/backend/internal/http/middleware"
	"github.com/pathsapp/backend/internal/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()
	os.Exit(m.Run())
}

type sentMail struct {
	To    string
	Token string
}

type stubMailer struct {
	sent []sentMail
	fail bool
}

func (s *stubMailer) SendVerification(to, token string) error {
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.sent = append(s.sent, sentMail{To: to, Token: token})
	return nil
}

func newRouter(store db.Store, mailer *stubMailer) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(middleware.SessionName,
		middleware.NewSessionStore(strings.Repeat("s", 32), "http://localhost:3000")))

	api.MountGroup(r, api.GroupConfig{}, endpoints.PublicModule(store, mailer))
	api.MountGroup(r, api.GroupConfig{Auth: true, Store: store}, endpoints.SessionModule(store))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, payload any, cookies ...string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testUser(passwordHash string, verified bool) *model.User {
	nick := "timo"
	return &model.User{
		ID:            1,
		FirstName:     "Tim",
		LastName:      "Tester",
		Nickname:      &nick,
		Email:         "tim@example.com",
		EmailVerified: verified,
		PasswordHash:  passwordHash,
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// loginCookie registers a session for user 1 and returns its cookie.
func loginCookie(t *testing.T, r *gin.Engine, store *db.MockStore, user *model.User) string {
	t.Helper()
	store.GetUserByEmailFn = func(string) (*model.User, error) { return user, nil }

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    user.Email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	return strings.Split(cookie, ";")[0]
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := middleware.HashPassword(plain)
	require.NoError(t, err)
	return hash
}

func TestRegister_Success(t *testing.T) {
	user := testUser("irrelevant", false)
	mailer := &stubMailer{}
	store := &db.MockStore{
		IsEmailTakenFn: func(string) (bool, error) { return false, nil },
		CreateUserFn: func(email, firstName, lastName string, nickname *string, passwordHash string) (*model.User, error) {
			assert.Equal(t, "tim@example.com", email)
			assert.NotEqual(t, "secret123", passwordHash, "password must be stored hashed")
			return user, nil
		},
		CreateTokenFn: func(userID int) (string, error) {
			assert.Equal(t, 1, userID)
			return "tok-abc", nil
		},
	}
	r := newRouter(store, mailer)

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"email":      "tim@example.com",
		"first_name": "Tim",
		"last_name":  "Tester",
		"password":   "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "tim@example.com", mailer.sent[0].To)
	assert.Equal(t, "tok-abc", mailer.sent[0].Token)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tim@example.com", resp["email"])
	assert.NotContains(t, resp, "password_hash")
	assert.NotContains(t, resp, "password")
}

func TestRegister_EmailTaken(t *testing.T) {
	// CreateUserFn is unset: an insert attempt would panic the test.
	store := &db.MockStore{
		IsEmailTakenFn: func(string) (bool, error) { return true, nil },
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"email":      "tim@example.com",
		"first_name": "Tim",
		"last_name":  "Tester",
		"password":   "secret123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_RejectsBlankName(t *testing.T) {
	r := newRouter(&db.MockStore{}, &stubMailer{})

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"email":      "tim@example.com",
		"first_name": "   ",
		"last_name":  "Tester",
		"password":   "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailTaken_Query(t *testing.T) {
	store := &db.MockStore{
		IsEmailTakenFn: func(email string) (bool, error) {
			assert.Equal(t, "tim@example.com", email)
			return true, nil
		},
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodGet, "/register/email-taken?email=tim@example.com", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"taken":true}`, w.Body.String())
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	// DeleteTokenFn is unset: the invalid token must not be deleted.
	store := &db.MockStore{
		VerifyUserByTokenFn: func(string) (bool, error) { return false, nil },
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodGet, "/register/verify-email?token=nope-nope", nil)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestVerifyEmail_ConsumesToken(t *testing.T) {
	var deleted string
	store := &db.MockStore{
		VerifyUserByTokenFn: func(string) (bool, error) { return true, nil },
		DeleteTokenFn: func(token string) (bool, error) {
			deleted = token
			return true, nil
		},
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodGet, "/register/verify-email?token=tok-abc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, "tok-abc", deleted)
}

func TestResendEmail_NoToken(t *testing.T) {
	mailer := &stubMailer{}
	store := &db.MockStore{
		GetTokenForEmailFn: func(string) (string, error) { return "", nil },
	}
	r := newRouter(store, mailer)

	w := doJSON(t, r, http.MethodPost, "/register/resend-email", gin.H{"email": "tim@example.com"})

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Empty(t, mailer.sent)
}

func TestResendEmail_Success(t *testing.T) {
	mailer := &stubMailer{}
	store := &db.MockStore{
		GetTokenForEmailFn: func(string) (string, error) { return "tok-abc", nil },
	}
	r := newRouter(store, mailer)

	w := doJSON(t, r, http.MethodPost, "/register/resend-email", gin.H{"email": "tim@example.com"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "tok-abc", mailer.sent[0].Token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := &db.MockStore{
		GetUserByEmailFn: func(string) (*model.User, error) { return nil, nil },
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"email": "who@example.com", "password": "x"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_BadPassword(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByEmailFn: func(string) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"email": user.Email, "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	// Credentials match, but the account is not verified: still rejected.
	user := testUser(mustHash(t, "secret123"), false)
	store := &db.MockStore{
		GetUserByEmailFn: func(string) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"email": user.Email, "password": "secret123"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_ThenUserinfo(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByIDFn: func(id int) (*model.User, error) {
			assert.Equal(t, 1, id)
			return user, nil
		},
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodGet, "/userinfo", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tim@example.com", resp["email"])
	assert.Equal(t, true, resp["email_verified"])
	assert.NotContains(t, resp, "password_hash")
}

func TestUserinfo_WithoutSession(t *testing.T) {
	r := newRouter(&db.MockStore{}, &stubMailer{})

	w := doJSON(t, r, http.MethodGet, "/userinfo", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPost, "/logout", nil, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestUpdateUserinfo_EmptyPayload(t *testing.T) {
	// UpdateUserFn is unset: an empty payload must never reach the builder.
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPost, "/userinfo", gin.H{}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserinfo_Partial(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	var gotFields []db.Assignment
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
		UpdateUserFn: func(id int, fields []db.Assignment) (bool, error) {
			assert.Equal(t, 1, id)
			gotFields = fields
			return true, nil
		},
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPost, "/userinfo", gin.H{"first_name": "Tom"}, cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, gotFields, 1)
	assert.Equal(t, "first_name", gotFields[0].Column())
}

func TestReplaceUserinfo_RequiresAllFields(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPut, "/userinfo", gin.H{"first_name": "Tom"}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	// ChangePasswordFn is unset: a bad old password must not touch the store.
	user := testUser(mustHash(t, "secret123"), true)
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPost, "/userinfo/change-password", gin.H{
		"oldPassword": "wrong",
		"newPassword": "fresh123",
	}, cookie)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChangePassword_Success(t *testing.T) {
	user := testUser(mustHash(t, "secret123"), true)
	var newHash string
	store := &db.MockStore{
		GetUserByIDFn: func(int) (*model.User, error) { return user, nil },
		ChangePasswordFn: func(id int, passwordHash string) (bool, error) {
			assert.Equal(t, 1, id)
			newHash = passwordHash
			return true, nil
		},
	}
	r := newRouter(store, &stubMailer{})
	cookie := loginCookie(t, r, store, user)

	w := doJSON(t, r, http.MethodPost, "/userinfo/change-password", gin.H{
		"oldPassword": "secret123",
		"newPassword": "fresh123",
	}, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.NotEmpty(t, newHash)
	assert.NotEqual(t, "fresh123", newHash, "new password must be stored hashed")
	assert.True(t, middleware.CheckPassword(newHash, "fresh123"))
}
