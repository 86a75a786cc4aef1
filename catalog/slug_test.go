package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trail Mix! ", "trail-mix"},
		{"My App 2.0", "my-app-2-0"},
		{"Summer   SALE", "summer-sale"},
		{"already-slugged", "already-slugged"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestResolveNoCollision(t *testing.T) {
	resolver := NewSlugResolver(newFakeStore())

	slug, err := resolver.Resolve(models.KindArticle, "Hello World", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)

	// Idempotent while nothing holds the slug.
	again, err := resolver.Resolve(models.KindArticle, "Hello World", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, slug, again)
}

func TestResolveAppendsCounter(t *testing.T) {
	store := newFakeStore()
	store.mustSeed(&models.Resource{Kind: models.KindArticle, Slug: "hello-world", Title: "Hello World"})
	resolver := NewSlugResolver(store)

	slug, err := resolver.Resolve(models.KindArticle, "Hello World", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", slug)

	store.mustSeed(&models.Resource{Kind: models.KindArticle, Slug: "hello-world-1", Title: "Hello World"})

	slug, err = resolver.Resolve(models.KindArticle, "Hello World", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", slug)
}

func TestResolveScopedByKind(t *testing.T) {
	store := newFakeStore()
	store.mustSeed(&models.Resource{Kind: models.KindArticle, Slug: "trail-mix", Title: "Trail Mix"})
	resolver := NewSlugResolver(store)

	slug, err := resolver.Resolve(models.KindProduct, "Trail Mix", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "trail-mix", slug)
}

func TestResolveExcludesResourceUnderEdit(t *testing.T) {
	store := newFakeStore()
	existing := store.mustSeed(&models.Resource{Kind: models.KindProduct, Slug: "trail-mix", Title: "Trail Mix"})
	resolver := NewSlugResolver(store)

	slug, err := resolver.Resolve(models.KindProduct, "Trail Mix", existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "trail-mix", slug)
}

func TestResolveFallsBackWhenTitleHasNoSlugChars(t *testing.T) {
	resolver := NewSlugResolver(newFakeStore())

	slug, err := resolver.Resolve(models.KindArticle, "!!!", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "untitled", slug)
}
