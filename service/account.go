package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

// MinPasswordLength is the minimum accepted raw password length.
const MinPasswordLength = 6

// AuthSession is the result of register and login: a signed identity token
// plus the public view of the account.
type AuthSession struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates a new account and signs it in.
func (s *Service) Register(username, email, password string) (*AuthSession, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errs.NewValidationError("username", "username is required")
	}
	if email == "" {
		return nil, errs.NewValidationError("email", "email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, errs.NewValidationError("password", "password must be at least 6 characters")
	}

	taken, err := s.db.UserRepo().UsernameOrEmailTaken(username, email)
	if err != nil {
		return nil, errs.NewStoreError("check", "user", err)
	}
	if taken {
		return nil, errs.NewConflictError("username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewStoreError("hash", "credential", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.UserRepo().Add(user); err != nil {
		// The uniqueness check above races with concurrent registrations;
		// the unique indexes are the real guard and surface as a conflict.
		return nil, errs.NewStoreError("create", "user", err)
	}

	return s.newSession(user)
}

// Login verifies an email/password pair and signs the account in. Unknown
// email and wrong password produce the same error so the endpoint cannot be
// used to enumerate accounts.
func (s *Service) Login(email, password string) (*AuthSession, error) {
	user, err := s.db.UserRepo().FindByEmail(strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewAuthError("invalid email or password")
	}
	if err != nil {
		return nil, errs.NewStoreError("find", "user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.NewAuthError("invalid email or password")
	}

	return s.newSession(user)
}

// UpdateEmail changes the acting user's email address.
func (s *Service) UpdateEmail(userID uuid.UUID, email string) (*models.PublicUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errs.NewValidationError("email", "email is required")
	}

	taken, err := s.db.UserRepo().EmailTakenByOther(email, userID)
	if err != nil {
		return nil, errs.NewStoreError("check", "user", err)
	}
	if taken {
		return nil, errs.NewConflictError("email already in use by another account")
	}

	if err := s.db.UserRepo().UpdateEmail(userID, email); err != nil {
		return nil, errs.NewStoreError("update", "user", err)
	}

	user, err := s.db.UserRepo().FindByID(userID)
	if err != nil {
		return nil, errs.NewStoreError("find", "user", err)
	}
	view := user.Public()
	return &view, nil
}

// DeleteAccount removes the user and cascades to every owned resource:
// projects with their tags and flows, and node images.
func (s *Service) DeleteAccount(userID uuid.UUID) error {
	if err := s.db.UserRepo().Delete(userID); err != nil {
		return errs.NewStoreError("delete", "user", err)
	}
	s.logger.Info().Str("userID", userID.String()).Msg("account deleted")
	return nil
}

func (s *Service) newSession(user *models.User) (*AuthSession, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthSession{Token: token, User: user.Public()}, nil
}
