package service

import (
	"github.com/google/uuid"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

// GetFlow returns the project's flow document. A missing project, a project
// owned by someone else, and a project without a saved flow all come back
// as nil with no error; the front-ends render an empty canvas for each.
func (s *Service) GetFlow(ownerID, projectID uuid.UUID) (*models.ProjectFlow, error) {
	exists, err := s.db.ProjectRepo().ExistsForOwner(projectID, ownerID)
	if err != nil {
		return nil, errs.NewStoreError("find", "project", err)
	}
	if !exists {
		return nil, nil
	}

	flow, err := s.db.FlowRepo().FindByProject(projectID)
	if err != nil {
		return nil, errs.NewStoreError("find", "flow", err)
	}
	return flow, nil
}

// SaveFlow writes the project's flow document, creating the row on first
// save and updating it afterwards. Unlike GetFlow, an absent or not-owned
// project is a hard not-found here.
func (s *Service) SaveFlow(ownerID, projectID uuid.UUID, document string) error {
	exists, err := s.db.ProjectRepo().ExistsForOwner(projectID, ownerID)
	if err != nil {
		return errs.NewStoreError("find", "project", err)
	}
	if !exists {
		return errs.NewNotFoundError("project")
	}

	if err := s.db.FlowRepo().Upsert(projectID, document); err != nil {
		return errs.NewStoreError("save", "flow", err)
	}
	return nil
}
