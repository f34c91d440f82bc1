package database

import (
	"gorm.io/gorm"

	"github.com/flowspace/flowspace-backend/models"
)

type Database struct {
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	flowRepo    *FlowRepo
	imageRepo   *ImageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		flowRepo:    NewFlowRepo(db),
		imageRepo:   NewImageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) FlowRepo() *FlowRepo {
	return d.flowRepo
}

func (d Database) ImageRepo() *ImageRepo {
	return d.imageRepo
}

// Migrate creates or updates the five relations. There is no separate
// migration tooling; the schema follows the model structs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Tag{},
		&models.ProjectFlow{},
		&models.NodeImage{},
	)
}
