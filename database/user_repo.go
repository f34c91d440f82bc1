package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID returns a user by id, or gorm.ErrRecordNotFound
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or gorm.ErrRecordNotFound
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameOrEmailTaken reports whether any user already holds the username
// or the email
func (r *UserRepo) UsernameOrEmailTaken(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther reports whether a different user already holds the email
func (r *UserRepo) EmailTakenByOther(email string, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

// UpdateEmail sets a new email on the user row
func (r *UserRepo) UpdateEmail(userID uuid.UUID, email string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("email", email).Error
}

// Delete removes the user and everything the user owns in one transaction:
// the user's projects with their tags and flows, and the user's node images.
// The cascade runs in the store layer so it behaves the same on every
// backend regardless of foreign-key enforcement.
func (r *UserRepo) Delete(userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ownedProjects := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Project{}).Select("id").Where("user_id = ?", userID)

		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.ProjectFlow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.NodeImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}
