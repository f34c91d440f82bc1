package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/service"
)

type imageHandler struct {
	responder Responder
	logger    zerolog.Logger
	svc       *service.Service
}

func newImageHandler(svc *service.Service) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		svc:       svc,
	}
}

// uploadImage stores a node's image for the acting user, echoing the
// payload back on success
func (h imageHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req uploadImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("body", "malformed request body"))
			return
		}

		if err := h.svc.UploadImage(user.ID, req.NodeID, req.ImageData); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Image uploaded successfully",
			"data":    req.ImageData,
		})
	}
}
