package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flowspace/flowspace-backend/models"
)

type FlowRepo struct {
	db *gorm.DB
}

func NewFlowRepo(db *gorm.DB) *FlowRepo {
	return &FlowRepo{db}
}

// FindByProject returns the project's flow document, or nil if none has
// been saved yet
func (r *FlowRepo) FindByProject(projectID uuid.UUID) (*models.ProjectFlow, error) {
	var flow models.ProjectFlow
	err := r.db.First(&flow, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flow, nil
}

// Upsert writes the flow document for a project as a single atomic
// statement keyed on the project_id unique index. Concurrent first writes
// cannot both insert; the loser of the conflict turns into an update, so at
// most one row ever exists per project.
func (r *FlowRepo) Upsert(projectID uuid.UUID, document string) error {
	flow := models.ProjectFlow{
		ProjectID:   projectID,
		Flow:        document,
		LastUpdated: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"flow", "last_updated"}),
	}).Create(&flow).Error
}
