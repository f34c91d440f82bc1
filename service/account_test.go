package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)
	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.False(t, session.User.CreatedAt.IsZero())

	// The session token must authenticate immediately.
	user, err := svc.Authenticate("Bearer " + session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"blank username", "", "a@example.com", "password123"},
		{"blank email", "alice", "", "password123"},
		{"whitespace username", "   ", "a@example.com", "password123"},
		{"short password", "alice", "a@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc, "alice")

	_, err := svc.Register("alice", "other@example.com", "password123")
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	_, err = svc.Register("someone", "alice@example.com", "password123")
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestStoredCredentialIsSaltedHash(t *testing.T) {
	svc, db := newTestService(t)

	registerTestUser(t, svc, "alice")
	registerTestUser(t, svc, "bob") // same password as alice

	var users []models.User
	require.NoError(t, db.Order("username").Find(&users).Error)
	require.Len(t, users, 2)

	alice, bob := users[0], users[1]
	assert.NotEqual(t, "password123", alice.PasswordHash)
	// Independent salts: same password, different stored hashes, both verify.
	assert.NotEqual(t, alice.PasswordHash, bob.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.PasswordHash), []byte("password123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(bob.PasswordHash), []byte("password123")))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc, "alice")

	session, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc, "alice")

	_, wrongPassword := svc.Login("alice@example.com", "wrong-password")
	require.Error(t, wrongPassword)
	assert.True(t, errs.IsUnauthorized(wrongPassword))

	_, unknownEmail := svc.Login("nobody@example.com", "password123")
	require.Error(t, unknownEmail)
	assert.True(t, errs.IsUnauthorized(unknownEmail))

	// Neither the kind nor the message may reveal which field was wrong.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUpdateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	session := registerTestUser(t, svc, "alice")

	updated, err := svc.UpdateEmail(session.User.ID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)

	// Login works with the new address only.
	_, err = svc.Login("new@example.com", "password123")
	require.NoError(t, err)
	_, err = svc.Login("alice@example.com", "password123")
	require.Error(t, err)
}

func TestUpdateEmailValidationAndConflict(t *testing.T) {
	svc, _ := newTestService(t)
	alice := registerTestUser(t, svc, "alice")
	registerTestUser(t, svc, "bob")

	_, err := svc.UpdateEmail(alice.User.ID, "   ")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = svc.UpdateEmail(alice.User.ID, "bob@example.com")
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	// Re-submitting the current address is not a conflict.
	updated, err := svc.UpdateEmail(alice.User.ID, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, db := newTestService(t)
	alice := registerTestUser(t, svc, "alice")
	bob := registerTestUser(t, svc, "bob")

	project, err := svc.CreateProject(alice.User.ID, CreateProjectInput{
		Name: "workspace",
		Tags: "go,backend",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SaveFlow(alice.User.ID, project.ID, `{"nodes":[]}`))
	require.NoError(t, svc.UploadImage(alice.User.ID, "node-1", "data:image/png;base64,aGk="))

	bobProject, err := svc.CreateProject(bob.User.ID, CreateProjectInput{
		Name: "untouched",
		Tags: "keep",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SaveFlow(bob.User.ID, bobProject.ID, `{"nodes":["b"]}`))

	require.NoError(t, svc.DeleteAccount(alice.User.ID))

	assert.EqualValues(t, 0, countRows(t, db, &models.User{}, "id = ?", alice.User.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Project{}, "user_id = ?", alice.User.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Tag{}, "project_id = ?", project.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.ProjectFlow{}, "project_id = ?", project.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.NodeImage{}, "user_id = ?", alice.User.ID))

	// Bob's data is untouched.
	assert.EqualValues(t, 1, countRows(t, db, &models.Project{}, "user_id = ?", bob.User.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.Tag{}, "project_id = ?", bobProject.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.ProjectFlow{}, "project_id = ?", bobProject.ID))

	// Listing for the former user id comes back empty.
	views, err := svc.ListProjects(alice.User.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
