package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageDataPrefix is the required leading marker of an uploaded payload.
const ImageDataPrefix = "data:image/"

// NodeImage stores the data-URI-encoded image of one node for one user.
// The (UserID, NodeID) unique index backs the atomic upsert in the image
// repo. Images are user-scoped, not project-scoped.
type NodeImage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_node_image_user_node"`
	NodeID    string    `json:"node_id" db:"node_id" gorm:"type:text;not null;uniqueIndex:idx_node_image_user_node"`
	ImageData string    `json:"image_data" db:"image_data" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

func (n *NodeImage) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
