package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/errs"
	"github.com/rcooper/trailhead-backend/models"
	"gorm.io/gorm"
)

// ResourceRepo implements the pipeline's ResourceStore contract over gorm.
// The composite unique index on (kind, slug) is the store-side uniqueness
// guarantee; duplicate-key errors surface as errs.ErrAlreadyExists via
// gorm's translated sentinel.
type ResourceRepo struct {
	db *gorm.DB
}

func NewResourceRepo(db *gorm.DB) *ResourceRepo {
	return &ResourceRepo{db}
}

// FindAllByKind returns all resources of one kind, newest first.
func (r *ResourceRepo) FindAllByKind(kind models.Kind) ([]*models.Resource, error) {
	var resources []*models.Resource
	err := r.db.Where("kind = ?", kind).Order("created_at DESC").Find(&resources).Error
	return resources, err
}

// FindByID returns (nil, nil) when no resource has the given ID.
func (r *ResourceRepo) FindByID(id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.First(&resource, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// FindBySlug returns (nil, nil) when no resource of the kind has the slug.
func (r *ResourceRepo) FindBySlug(kind models.Kind, slug string) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.First(&resource, "kind = ? AND slug = ?", kind, slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// Add inserts a new resource, assigning the ID and creation timestamp when
// unset. A slug collision returns errs.ErrAlreadyExists.
func (r *ResourceRepo) Add(resource *models.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}

	err := r.db.Create(resource).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s slug %q: %w", resource.Kind, resource.Slug, errs.ErrAlreadyExists)
	}
	return err
}

// Update rewrites an existing resource by ID. The ID and creation
// timestamp never change; a missing target returns errs.ErrNotFound.
func (r *ResourceRepo) Update(resource *models.Resource) error {
	tx := r.db.Model(&models.Resource{}).
		Where("id = ?", resource.ID).
		Select("*").Omit("id", "created_at").
		Updates(resource)
	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s slug %q: %w", resource.Kind, resource.Slug, errs.ErrAlreadyExists)
	}
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", resource.Kind, resource.ID, errs.ErrNotFound)
	}
	return nil
}

// Delete removes a resource by ID; errs.ErrNotFound when nothing matched.
func (r *ResourceRepo) Delete(id uuid.UUID) error {
	tx := r.db.Delete(&models.Resource{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("resource %s: %w", id, errs.ErrNotFound)
	}
	return nil
}
