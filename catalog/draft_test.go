package catalog

import (
	"net/url"
	"testing"

	"github.com/rcooper/trailhead-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleCopiesRecognizedFields(t *testing.T) {
	desc := ProductDescriptor(t.TempDir())
	draft := &models.Resource{Kind: models.KindProduct}

	form := url.Values{}
	form.Set("title", "Trail Mix")
	form.Set("description", "Salty and sweet")
	form.Set("price", "5")
	form.Set("weight", "0.25")

	fieldErrs := Assemble(draft, form, desc)
	require.Empty(t, fieldErrs)

	assert.Equal(t, "Trail Mix", draft.Title)
	assert.Equal(t, "Salty and sweet", draft.Description)
	require.NotNil(t, draft.Price)
	assert.Equal(t, 5.0, *draft.Price)
	require.NotNil(t, draft.Weight)
	assert.Equal(t, 0.25, *draft.Weight)
}

func TestAssembleIgnoresUnknownFields(t *testing.T) {
	desc := ArticleDescriptor(t.TempDir())
	draft := &models.Resource{Kind: models.KindArticle}

	form := url.Values{}
	form.Set("title", "Hello World")
	form.Set("slug", "attacker-chosen")
	form.Set("favoriteColor", "green")

	fieldErrs := Assemble(draft, form, desc)
	require.Empty(t, fieldErrs)

	assert.Equal(t, "Hello World", draft.Title)
	assert.Empty(t, draft.Slug, "slug is never assignable from the form")
}

func TestAssembleRequiresTitle(t *testing.T) {
	desc := ArticleDescriptor(t.TempDir())

	tests := []struct {
		name string
		form url.Values
	}{
		{"omitted", url.Values{"description": {"no title here"}}},
		{"submitted blank", url.Values{"title": {"   "}, "description": {"no title here"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := &models.Resource{Kind: models.KindArticle}

			fieldErrs := Assemble(draft, tt.form, desc)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "title", fieldErrs[0].Field)
		})
	}
}

func TestAssembleRejectsBadNumerics(t *testing.T) {
	desc := ProductDescriptor(t.TempDir())

	tests := []struct {
		name  string
		price string
	}{
		{"negative", "-3"},
		{"not a number", "cheap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := &models.Resource{Kind: models.KindProduct}

			form := url.Values{}
			form.Set("title", "Trail Mix")
			form.Set("price", tt.price)

			fieldErrs := Assemble(draft, form, desc)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "price", fieldErrs[0].Field)

			// Already-entered values survive the failure for re-display.
			assert.Equal(t, "Trail Mix", draft.Title)
			assert.Nil(t, draft.Price)
		})
	}
}

func TestAssembleLeavesExistingValuesWhenFieldOmitted(t *testing.T) {
	desc := ProductDescriptor(t.TempDir())
	weight := 0.5
	draft := &models.Resource{
		Kind:        models.KindProduct,
		Title:       "Trail Mix",
		Description: "original",
		Weight:      &weight,
	}

	form := url.Values{}
	form.Set("title", "Trail Mix Deluxe")

	fieldErrs := Assemble(draft, form, desc)
	require.Empty(t, fieldErrs)

	assert.Equal(t, "Trail Mix Deluxe", draft.Title)
	assert.Equal(t, "original", draft.Description)
	require.NotNil(t, draft.Weight)
	assert.Equal(t, 0.5, *draft.Weight)
}

func TestAssembleClearsFieldsSubmittedEmpty(t *testing.T) {
	desc := ProductDescriptor(t.TempDir())
	weight := 0.5
	draft := &models.Resource{
		Kind:        models.KindProduct,
		Title:       "Trail Mix",
		Description: "original",
		Weight:      &weight,
	}

	// Present-but-empty keys assign the empty value; only absent keys are
	// left alone.
	form := url.Values{}
	form.Set("title", "Trail Mix")
	form.Set("description", "")
	form.Set("weight", "")

	fieldErrs := Assemble(draft, form, desc)
	require.Empty(t, fieldErrs)

	assert.Empty(t, draft.Description)
	assert.Nil(t, draft.Weight)
}

func TestAssembleClearsMarkdownSubmittedEmpty(t *testing.T) {
	desc := ArticleDescriptor(t.TempDir())
	markdown := "# old body"
	draft := &models.Resource{
		Kind:     models.KindArticle,
		Title:    "Hello World",
		Markdown: &markdown,
	}

	form := url.Values{}
	form.Set("title", "Hello World")
	form.Set("markdown", "")

	fieldErrs := Assemble(draft, form, desc)
	require.Empty(t, fieldErrs)

	assert.Nil(t, draft.Markdown)
}
