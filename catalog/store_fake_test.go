package catalog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/errs"
	"github.com/rcooper/trailhead-backend/models"
)

// fakeStore is an in-memory ResourceStore enforcing the same (kind, slug)
// uniqueness the real store does. beforeAdd, when set, runs under the lock
// ahead of each insert so tests can stage concurrent-create races.
type fakeStore struct {
	mu        sync.Mutex
	resources []*models.Resource
	beforeAdd func(s *fakeStore, r *models.Resource) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) FindAllByKind(kind models.Kind) ([]*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Resource
	for _, r := range s.resources {
		if r.Kind == kind {
			copied := *r
			out = append(out, &copied)
		}
	}
	// Newest first, matching the real store's ordering.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeStore) FindByID(id uuid.UUID) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.resources {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindBySlug(kind models.Kind, slug string) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findBySlugLocked(kind, slug), nil
}

func (s *fakeStore) findBySlugLocked(kind models.Kind, slug string) *models.Resource {
	for _, r := range s.resources {
		if r.Kind == kind && r.Slug == slug {
			copied := *r
			return &copied
		}
	}
	return nil
}

func (s *fakeStore) Add(resource *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.beforeAdd != nil {
		hook := s.beforeAdd
		s.beforeAdd = nil
		if err := hook(s, resource); err != nil {
			return err
		}
	}

	if existing := s.findBySlugLocked(resource.Kind, resource.Slug); existing != nil {
		return fmt.Errorf("%s slug %q: %w", resource.Kind, resource.Slug, errs.ErrAlreadyExists)
	}

	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}

	copied := *resource
	s.resources = append(s.resources, &copied)
	return nil
}

// insertLocked seeds a record bypassing the hook; for use from beforeAdd.
func (s *fakeStore) insertLocked(resource *models.Resource) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}
	copied := *resource
	s.resources = append(s.resources, &copied)
}

func (s *fakeStore) Update(resource *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.resources {
		if r.ID == resource.ID {
			copied := *resource
			copied.CreatedAt = r.CreatedAt
			s.resources[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("%s %s: %w", resource.Kind, resource.ID, errs.ErrNotFound)
}

func (s *fakeStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.resources {
		if r.ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("resource %s: %w", id, errs.ErrNotFound)
}

func (s *fakeStore) mustSeed(resource *models.Resource) *models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(resource)
	copied := *s.resources[len(s.resources)-1]
	return &copied
}
