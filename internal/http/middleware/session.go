package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/pathsapp/backend/internal/db"
	"github.com/pathsapp/backend/internal/model"
)

// SessionName is the cookie the signed session rides on.
const SessionName = "PASSID"

const (
	sessionUserKey = "user_id"
	currentUserKey = "currentUser"
)

// NewSessionStore builds the signed cookie store backing all sessions.
// The cookie carries only the user identifier; everything else is resolved
// per request.
func NewSessionStore(secret, baseURL string) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   strings.HasPrefix(baseURL, "https"),
		MaxAge:   30 * 24 * 60 * 60,
	})
	return store
}

// SetSessionUser binds the session cookie to a user after login.
func SetSessionUser(c *gin.Context, userID int) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	return session.Save()
}

// ClearSession tears the session down on logout.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// SessionAuth resolves the session's user id against the store and sets
// "currentUser" in the context. A missing or unresolvable id denies access;
// it is not a server failure.
func SessionAuth(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(sessionUserKey).(int)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		user, err := store.GetUserByID(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser retrieves *model.User from the gin context after
// SessionAuth has run.
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}
