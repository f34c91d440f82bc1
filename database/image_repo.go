package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flowspace/flowspace-backend/models"
)

type ImageRepo struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db}
}

// FindByOwnerAndNode returns the stored image for (owner, node), or nil
func (r *ImageRepo) FindByOwnerAndNode(ownerID uuid.UUID, nodeID string) (*models.NodeImage, error) {
	var image models.NodeImage
	err := r.db.First(&image, "user_id = ? AND node_id = ?", ownerID, nodeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// Upsert writes the image for (owner, node) as a single atomic statement
// keyed on the composite unique index, mirroring FlowRepo.Upsert.
func (r *ImageRepo) Upsert(ownerID uuid.UUID, nodeID, imageData string) error {
	image := models.NodeImage{
		UserID:    ownerID,
		NodeID:    nodeID,
		ImageData: imageData,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "node_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"image_data", "updated_at"}),
	}).Create(&image).Error
}
