package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFlow holds the single serialized flow document of a project. The
// unique index on ProjectID backs the atomic upsert in the flow repo.
type ProjectFlow struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_flow_project_id"`
	Flow        string    `json:"flow" db:"flow" gorm:"type:text;not null"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated" gorm:"not null"`
}

func (f *ProjectFlow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
