// Package service implements the operation catalogue shared by both
// front-ends: account lifecycle, the auth gate, and ownership-scoped CRUD
// over projects, flows and node images. Transport adapters only translate
// requests into these calls and results back out; no routing or framing
// concern lives here.
package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/auth"
	"github.com/flowspace/flowspace-backend/database"
	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

type Service struct {
	db     database.Database
	tokens *auth.TokenService
	logger zerolog.Logger
}

func New(db database.Database, tokens *auth.TokenService) *Service {
	return &Service{
		db:     db,
		tokens: tokens,
		logger: log.With().Str("component", "service").Logger(),
	}
}

const bearerPrefix = "Bearer "

// Authenticate resolves a raw credential ("Bearer <token>") to the acting
// user. The user row is re-fetched rather than trusted from token claims,
// so deleting an account immediately invalidates its in-flight tokens for
// every protected operation even though the tokens themselves stay
// cryptographically valid until expiry.
func (s *Service) Authenticate(rawToken string) (*models.User, error) {
	if !strings.HasPrefix(rawToken, bearerPrefix) {
		return nil, errs.NewAuthError("missing or malformed authorization token")
	}

	claims, err := s.tokens.Verify(strings.TrimPrefix(rawToken, bearerPrefix))
	if err != nil {
		return nil, err
	}

	user, err := s.db.UserRepo().FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewAuthError("invalid token")
	}
	if err != nil {
		return nil, errs.NewStoreError("find", "user", err)
	}
	return user, nil
}
