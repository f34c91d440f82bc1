package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/errs"
	"github.com/flowspace/flowspace-backend/models"
)

// ProjectView is the project shape returned to both front-ends: the entity
// fields plus the flattened tag names.
type ProjectView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

func projectView(p *models.Project) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsPrivate:   p.IsPrivate,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		Tags:        p.TagNames(),
	}
}

// CreateProjectInput carries the fields of a new project. Tags is a
// comma-separated list.
type CreateProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"is_private"`
	Tags        string  `json:"tags"`
}

// UpdateProjectInput carries a partial update. Each nil field is left
// untouched; there is deliberately no way to clear the description to null.
// A non-nil Tags slice fully replaces the tag set.
type UpdateProjectInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	IsPrivate   *bool     `json:"is_private"`
	Tags        *[]string `json:"tags"`
}

// ListProjects returns the owner's projects, newest first.
func (s *Service) ListProjects(ownerID uuid.UUID) ([]ProjectView, error) {
	projects, err := s.db.ProjectRepo().FindAllByOwner(ownerID)
	if err != nil {
		return nil, errs.NewStoreError("find", "projects", err)
	}

	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, projectView(project))
	}
	return views, nil
}

// CreateProject persists a new project owned by ownerID.
func (s *Service) CreateProject(ownerID uuid.UUID, input CreateProjectInput) (*ProjectView, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.NewValidationError("name", "project name is required")
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		UserID:      ownerID,
	}
	if input.IsPrivate != nil {
		project.IsPrivate = *input.IsPrivate
	}

	if err := s.db.ProjectRepo().Add(project, ParseTagsCSV(input.Tags)); err != nil {
		return nil, errs.NewStoreError("create", "project", err)
	}

	created, err := s.db.ProjectRepo().FindByIDAndOwner(project.ID, ownerID)
	if err != nil {
		return nil, errs.NewStoreError("find", "project", err)
	}
	view := projectView(created)
	return &view, nil
}

// GetProject returns one project. A project owned by a different user is
// reported exactly like a nonexistent one.
func (s *Service) GetProject(ownerID, projectID uuid.UUID) (*ProjectView, error) {
	project, err := s.db.ProjectRepo().FindByIDAndOwner(projectID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("project")
	}
	if err != nil {
		return nil, errs.NewStoreError("find", "project", err)
	}
	view := projectView(project)
	return &view, nil
}

// UpdateProject applies a partial update to an owned project.
func (s *Service) UpdateProject(ownerID, projectID uuid.UUID, input UpdateProjectInput) (*ProjectView, error) {
	exists, err := s.db.ProjectRepo().ExistsForOwner(projectID, ownerID)
	if err != nil {
		return nil, errs.NewStoreError("find", "project", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("project")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, errs.NewValidationError("name", "project name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsPrivate != nil {
		updates["is_private"] = *input.IsPrivate
	}

	if err := s.db.ProjectRepo().Update(projectID, updates, input.Tags); err != nil {
		return nil, errs.NewStoreError("update", "project", err)
	}

	return s.GetProject(ownerID, projectID)
}

// DeleteProject removes an owned project together with its tags and flow.
func (s *Service) DeleteProject(ownerID, projectID uuid.UUID) error {
	err := s.db.ProjectRepo().DeleteByIDAndOwner(projectID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFoundError("project")
	}
	if err != nil {
		return errs.NewStoreError("delete", "project", err)
	}
	return nil
}

// ParseTagsCSV splits a comma-separated tag list, trims each segment, drops
// empty segments and keeps the first five survivors.
func ParseTagsCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var names []string
	for _, segment := range strings.Split(csv, ",") {
		name := strings.TrimSpace(segment)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == models.MaxTagsPerProject {
			break
		}
	}
	return names
}
