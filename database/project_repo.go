package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// preloadTags loads a project's tags in insertion order
func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id")
}

// FindAllByOwner returns the owner's projects, newest first, with tags
func (r *ProjectRepo) FindAllByOwner(ownerID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Tags", preloadTags).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByIDAndOwner returns the project only if it belongs to ownerID. A
// project owned by someone else comes back as gorm.ErrRecordNotFound, same
// as one that does not exist.
func (r *ProjectRepo) FindByIDAndOwner(projectID, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Tags", preloadTags).
		First(&project, "id = ? AND user_id = ?", projectID, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ExistsForOwner reports whether the project exists and belongs to ownerID
func (r *ProjectRepo) ExistsForOwner(projectID, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("id = ? AND user_id = ?", projectID, ownerID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new project and its tag rows in one transaction
func (r *ProjectRepo) Add(project *models.Project, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return insertTags(tx, project.ID, tagNames)
	})
}

// Update applies the given column updates and, when tags is non-nil, fully
// replaces the tag set (delete-all then re-insert). A nil tags slice leaves
// existing tags untouched.
func (r *ProjectRepo) Update(projectID uuid.UUID, updates map[string]any, tags *[]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Project{}).Where("id = ?", projectID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			if err := tx.Where("project_id = ?", projectID).Delete(&models.Tag{}).Error; err != nil {
				return err
			}
			if err := insertTags(tx, projectID, *tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByIDAndOwner removes the project in a single statement scoped by
// both id and owner, then its tags and flow. Zero affected rows means the
// project is absent or not owned, reported as gorm.ErrRecordNotFound.
func (r *ProjectRepo) DeleteByIDAndOwner(projectID, ownerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", projectID, ownerID).
			Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&models.ProjectFlow{}).Error
	})
}

// insertTags writes tag rows in order, capped at the per-project limit
func insertTags(tx *gorm.DB, projectID uuid.UUID, names []string) error {
	if len(names) > models.MaxTagsPerProject {
		names = names[:models.MaxTagsPerProject]
	}
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Tag{Name: name, ProjectID: projectID})
	}
	return tx.Create(&rows).Error
}
