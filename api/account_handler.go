package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/service"
)

type accountHandler struct {
	responder Responder
	logger    zerolog.Logger
	svc       *service.Service
}

func newAccountHandler(svc *service.Service) accountHandler {
	logger := log.With().Str("handlerName", "accountHandler").Logger()

	return accountHandler{
		responder: NewResponder(logger),
		logger:    logger,
		svc:       svc,
	}
}

// register creates a new account and returns a session token
func (h accountHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		session, err := h.svc.Register(req.Username, req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"message": "User registered successfully",
			"token":   session.Token,
			"user":    session.User,
		})
	}
}

// login verifies credentials and returns a session token
func (h accountHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		session, err := h.svc.Login(req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Login successful",
			"token":   session.Token,
			"user":    session.User,
		})
	}
}

// getProfile returns the acting user's public view
func (h accountHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, user.Public())
	}
}

// updateEmail changes the acting user's email address
func (h accountHandler) updateEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		updated, err := h.svc.UpdateEmail(user.ID, req.Email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Email updated successfully",
			"data":    updated,
		})
	}
}

// deleteAccount removes the acting user and everything the user owns
func (h accountHandler) deleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.svc.DeleteAccount(user.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Account deleted successfully",
		})
	}
}
