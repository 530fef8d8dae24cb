package db

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathsapp/backend/internal/model"
)

// Integration tests against a real Postgres. Skipped unless
// TEST_DATABASE_URL is set; the schema is applied from ../../migrations.

func testStore(t *testing.T) Store {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := InitTestDB("../../migrations")
	require.NoError(t, err)
	return store
}

func seedUser(t *testing.T, store Store) *model.User {
	t.Helper()
	email := fmt.Sprintf("user-%s@example.com", uuid.NewString())
	user, err := store.CreateUser(email, "Tim", "Tester", nil, "hash")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestStore_UserLifecycle(t *testing.T) {
	store := testStore(t)
	user := seedUser(t, store)

	assert.False(t, user.EmailVerified)

	taken, err := store.IsEmailTaken(user.Email)
	require.NoError(t, err)
	assert.True(t, taken)

	byEmail, err := store.GetUserByEmail(user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := store.GetUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := store.UpdateUser(user.ID, []Assignment{Set("first_name", "Tom")})
	require.NoError(t, err)
	assert.True(t, ok)

	updated, err := store.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Tom", updated.FirstName)
}

func TestStore_TokenVerificationFlow(t *testing.T) {
	store := testStore(t)
	user := seedUser(t, store)

	token, err := store.CreateToken(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	found, err := store.GetTokenForEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, token, found)

	ok, err := store.VerifyUserByToken("bogus-token")
	require.NoError(t, err)
	assert.False(t, ok)

	verified, err := store.IsEmailVerified(user.Email)
	require.NoError(t, err)
	assert.False(t, verified, "unknown token must leave the flag unchanged")

	ok, err = store.VerifyUserByToken(token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteToken(token)
	require.NoError(t, err)
	assert.True(t, ok)

	verified, err = store.IsEmailVerified(user.Email)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestStore_PathLifecycle(t *testing.T) {
	store := testStore(t)
	user := seedUser(t, store)

	start := model.Location{Latitude: 46.5547, Longitude: 15.6459}
	end := model.Location{Latitude: 46.0569, Longitude: 14.5058}
	desc := "across the hills"

	path, err := store.CreatePath(user.ID, "Hike", &desc, time.Now().UTC(), start, end)
	require.NoError(t, err)
	require.NotNil(t, path)

	decoded := model.ParseLocation(path.LocationStart)
	assert.InDelta(t, start.Latitude, decoded.Latitude, 1e-9)
	assert.InDelta(t, start.Longitude, decoded.Longitude, 1e-9)

	owner, err := store.IsPathOwner(path.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, owner)

	ok, err := store.UpdatePath(path.ID, []Assignment{
		Set("title", "Long hike"),
		SetLocation("location_end", model.Location{Latitude: 1, Longitude: 2}),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	fetched, err := store.GetPathByID(path.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Long hike", fetched.Title)
	assert.InDelta(t, 1.0, model.ParseLocation(fetched.LocationEnd).Latitude, 1e-9)

	deleted, err := store.DeletePath(path.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, path.ID, deleted.ID)

	gone, err := store.GetPathByID(path.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	missing, err := store.DeletePath(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing, "deleting a nonexistent path is a not-found, not an error")
}
