package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

// UploadImage stores the data-URI-encoded image for one of the user's
// nodes, replacing any previous image for the same node. Images are scoped
// to the user, not to a project.
func (s *Service) UploadImage(ownerID uuid.UUID, nodeID, imageData string) error {
	if strings.TrimSpace(nodeID) == "" {
		return errs.NewValidationError("nodeId", "nodeId is required")
	}
	if strings.TrimSpace(imageData) == "" {
		return errs.NewValidationError("imageData", "imageData is required")
	}
	if !strings.HasPrefix(imageData, models.ImageDataPrefix) {
		return errs.NewValidationError("imageData", "invalid image data format")
	}

	if err := s.db.ImageRepo().Upsert(ownerID, nodeID, imageData); err != nil {
		return errs.NewStoreError("save", "image", err)
	}
	return nil
}
