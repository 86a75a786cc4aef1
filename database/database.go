package database

import (
	"github.com/rcooper/trailhead-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	resourceRepo *ResourceRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		resourceRepo: NewResourceRepo(db),
	}
}

func (d Database) ResourceRepo() *ResourceRepo {
	return d.resourceRepo
}

// Migrate creates or updates the resources table, including the composite
// unique index on (kind, slug).
func (d Database) Migrate() error {
	return d.resourceRepo.db.AutoMigrate(&models.Resource{})
}
