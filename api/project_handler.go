package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/service"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	svc       *service.Service
}

func newProjectHandler(svc *service.Service) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		svc:       svc,
	}
}

// projectIDParam parses the projectID path parameter
func projectIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "projectID")
	if raw == "" {
		return uuid.Nil, errs.NewValidationError("projectID", "missing projectID")
	}
	projectID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewValidationError("projectID", "invalid projectID")
	}
	return projectID, nil
}

// listProjects returns the acting user's projects with their tags
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views, err := h.svc.ListProjects(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, views)
	}
}

// createProject creates a new project owned by the acting user
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input service.CreateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		view, err := h.svc.CreateProject(user.ID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// getProject returns one of the acting user's projects
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view, err := h.svc.GetProject(user.ID, projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, view)
	}
}

// updateProject applies a partial update to one of the acting user's projects
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input service.UpdateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		view, err := h.svc.UpdateProject(user.ID, projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, view)
	}
}

// deleteProject removes one of the acting user's projects
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.svc.DeleteProject(user.ID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Project deleted successfully",
		})
	}
}
