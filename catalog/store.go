package catalog

import (
	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/models"
)

// ResourceStore is the persistence contract the pipeline runs against. The
// store enforces slug uniqueness per kind; two concurrent Adds with the
// same (kind, slug) see exactly one succeed and one errs.ErrAlreadyExists.
//
// FindByID and FindBySlug return (nil, nil) when no record matches.
type ResourceStore interface {
	FindAllByKind(kind models.Kind) ([]*models.Resource, error)
	FindByID(id uuid.UUID) (*models.Resource, error)
	FindBySlug(kind models.Kind, slug string) (*models.Resource, error)
	Add(resource *models.Resource) error
	Update(resource *models.Resource) error
	Delete(id uuid.UUID) error
}
