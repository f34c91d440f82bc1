package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/service"
)

type flowHandler struct {
	responder Responder
	logger    zerolog.Logger
	svc       *service.Service
}

func newFlowHandler(svc *service.Service) flowHandler {
	logger := log.With().Str("handlerName", "flowHandler").Logger()

	return flowHandler{
		responder: NewResponder(logger),
		logger:    logger,
		svc:       svc,
	}
}

// getFlow returns the project's flow document, or null when the project is
// absent, not owned, or has no saved flow yet
func (h flowHandler) getFlow() http.HandlerFunc {
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

		flow, err := h.svc.GetFlow(user.ID, projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, flow)
	}
}

// saveFlow writes the project's flow document
func (h flowHandler) saveFlow() http.HandlerFunc {
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

		var req saveFlowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		if err := h.svc.SaveFlow(user.ID, projectID, req.Flow); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Flow saved successfully",
		})
	}
}
