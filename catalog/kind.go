package catalog

import (
	"errors"
	"path"
	"strconv"
	"strings"

	"github.com/rcooper/trailhead-backend/models"
)

// Mode names a pipeline entry point. Views are resolved through the
// descriptor's enumerated mode table, never by concatenating request input.
type Mode string

const (
	ModeIndex Mode = "index"
	ModeShow  Mode = "show"
	ModeNew   Mode = "new"
	ModeEdit  Mode = "edit"
)

// FieldSpec describes one recognized form field of a kind. Assign copies a
// submitted value onto the draft and reports a human-readable reason when
// the value is unusable.
type FieldSpec struct {
	Name     string
	Required bool
	Assign   func(r *models.Resource, value string) error
}

// Descriptor carries everything that differs between resource kinds: the
// field schema, the upload directory, the URL base path, and the view table.
// The pipeline itself is kind-agnostic.
type Descriptor struct {
	Kind      models.Kind
	BasePath  string
	UploadDir string
	Fields    []FieldSpec
	Views     map[Mode]string
}

func (d Descriptor) View(mode Mode) string {
	return d.Views[mode]
}

// SlugURL builds the canonical URL for a resource of this kind.
func (d Descriptor) SlugURL(slug string) string {
	return path.Join(d.BasePath, slug)
}

// ArticleDescriptor returns the Article kind configuration. Articles carry
// a markdown body alongside the shared title/description fields.
func ArticleDescriptor(uploadDir string) Descriptor {
	return Descriptor{
		Kind:      models.KindArticle,
		BasePath:  "/blog",
		UploadDir: uploadDir,
		Fields: []FieldSpec{
			titleField(),
			descriptionField(),
			{Name: "markdown", Assign: func(r *models.Resource, v string) error {
				if v == "" {
					r.Markdown = nil
					return nil
				}
				r.Markdown = &v
				return nil
			}},
		},
		Views: map[Mode]string{
			ModeIndex: "blog/index",
			ModeShow:  "blog/show",
			ModeNew:   "blog/new",
			ModeEdit:  "blog/edit",
		},
	}
}

// ProductDescriptor returns the Product kind configuration. Price and
// weight parse as decimals and must be non-negative.
func ProductDescriptor(uploadDir string) Descriptor {
	return Descriptor{
		Kind:      models.KindProduct,
		BasePath:  "/gear",
		UploadDir: uploadDir,
		Fields: []FieldSpec{
			titleField(),
			descriptionField(),
			{Name: "price", Assign: assignDecimal(func(r *models.Resource, f *float64) {
				r.Price = f
			})},
			{Name: "weight", Assign: assignDecimal(func(r *models.Resource, f *float64) {
				r.Weight = f
			})},
		},
		Views: map[Mode]string{
			ModeIndex: "gear/index",
			ModeShow:  "gear/show",
			ModeNew:   "gear/new",
			ModeEdit:  "gear/edit",
		},
	}
}

func titleField() FieldSpec {
	return FieldSpec{Name: "title", Required: true, Assign: func(r *models.Resource, v string) error {
		r.Title = v
		return nil
	}}
}

func descriptionField() FieldSpec {
	return FieldSpec{Name: "description", Assign: func(r *models.Resource, v string) error {
		r.Description = v
		return nil
	}}
}

var (
	errNotDecimal = errors.New("must be a number")
	errNegative   = errors.New("must not be negative")
)

func assignDecimal(set func(r *models.Resource, f *float64)) func(*models.Resource, string) error {
	return func(r *models.Resource, value string) error {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			set(r, nil)
			return nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return errNotDecimal
		}
		if f < 0 {
			return errNegative
		}
		set(r, &f)
		return nil
	}
}
