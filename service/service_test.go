package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flowspace/flowspace-backend/auth"
	"github.com/flowspace/flowspace-backend/database"
	"github.com/flowspace/flowspace-backend/errs"
)

// newTestService opens a private in-memory database per test. The pool is
// pinned to one connection so the shared-cache memory database survives for
// the whole test and concurrent callers interleave at the pool the same way
// production callers interleave at the store.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	return New(database.New(db), auth.NewTokenService([]byte("test-secret"), time.Hour)), db
}

// registerTestUser registers an account and returns its session.
func registerTestUser(t *testing.T, svc *Service, username string) *AuthSession {
	t.Helper()
	session, err := svc.Register(username, username+"@example.com", "password123")
	require.NoError(t, err)
	return session
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	session := registerTestUser(t, svc, "alice")

	user, err := svc.Authenticate("Bearer " + session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticateRequiresBearerPrefix(t *testing.T) {
	svc, _ := newTestService(t)
	session := registerTestUser(t, svc, "alice")

	for _, raw := range []string{"", session.Token, "bearer " + session.Token, "Token " + session.Token} {
		_, err := svc.Authenticate(raw)
		require.Error(t, err, "raw credential %q", raw)
		assert.True(t, errs.IsUnauthorized(err))
	}
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc, "alice")

	forger := auth.NewTokenService([]byte("other-secret"), time.Hour)
	token, err := forger.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Authenticate("Bearer " + token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestAuthenticateAfterAccountDeletion(t *testing.T) {
	svc, _ := newTestService(t)
	session := registerTestUser(t, svc, "alice")

	require.NoError(t, svc.DeleteAccount(session.User.ID))

	// The token is still cryptographically valid, but the re-fetch of the
	// account makes it unusable for protected operations.
	_, err := svc.Authenticate("Bearer " + session.Token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	svc, _ := newTestService(t)

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Authenticate("Bearer " + token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

// countRows is a bare row count over any model, for cascade assertions.
func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}
