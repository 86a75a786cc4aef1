package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/models"
)

// Slugify converts a title to a URL-safe slug: lowercase, runs of
// whitespace and other non [a-z0-9] characters collapse to a single
// hyphen, leading and trailing hyphens stripped.
//
//	Slugify("Hello World")   // "hello-world"
//	Slugify("  Trail Mix! ") // "trail-mix"
func Slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// SlugResolver derives unique slugs against the store. Uniqueness is
// per kind; the store's constraint remains the final arbiter under
// concurrent creates.
type SlugResolver struct {
	store ResourceStore
}

func NewSlugResolver(store ResourceStore) *SlugResolver {
	return &SlugResolver{store: store}
}

// Resolve returns the derived slug for title, suffixed with a counter when
// a different resource of the same kind already holds it. A holder whose ID
// equals excludeID is the resource being edited and does not count as a
// collision. With no collision the result is stable across calls.
func (s *SlugResolver) Resolve(kind models.Kind, title string, excludeID uuid.UUID) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}

	slug := base
	for n := 1; ; n++ {
		existing, err := s.store.FindBySlug(kind, slug)
		if err != nil {
			return "", err
		}
		if existing == nil || existing.ID == excludeID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
