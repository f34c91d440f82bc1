package models

import "github.com/google/uuid"

// Tag represents a label attached to a project. Tag ids are sequential so
// that a project's tags read back in the order they were written.
type Tag struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_tag_project_id"`
}

// MaxTagsPerProject caps how many tags a single project may carry. Extra
// tags in a request are silently dropped.
const MaxTagsPerProject = 5
