package catalog

import (
	"errors"
	"net/url"

	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/errs"
	"github.com/rcooper/trailhead-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pipeline is the upload-intake-and-commit sequence for one resource kind:
// field assembly, upload gating, slug resolution, and the commit against
// the store. One instance per kind; instances share the store and gate and
// hold no per-request state.
type Pipeline struct {
	desc   Descriptor
	store  ResourceStore
	gate   *UploadGate
	slugs  *SlugResolver
	logger zerolog.Logger
}

func NewPipeline(desc Descriptor, store ResourceStore, gate *UploadGate) *Pipeline {
	logger := log.With().Str("kind", string(desc.Kind)).Logger()

	return &Pipeline{
		desc:   desc,
		store:  store,
		gate:   gate,
		slugs:  NewSlugResolver(store),
		logger: logger,
	}
}

func (p *Pipeline) Kind() models.Kind {
	return p.desc.Kind
}

func (p *Pipeline) Descriptor() Descriptor {
	return p.desc
}

// NewDraft returns an empty draft of the pipeline's kind, as served by the
// new-form endpoint.
func (p *Pipeline) NewDraft() *models.Resource {
	return &models.Resource{Kind: p.desc.Kind}
}

func (p *Pipeline) List() ([]*models.Resource, error) {
	resources, err := p.store.FindAllByKind(p.desc.Kind)
	if err != nil {
		return nil, errs.NewDatabaseError("list", string(p.desc.Kind), err)
	}
	return resources, nil
}

// Load fetches the edit/delete target by ID. A miss is a NotFound failure.
func (p *Pipeline) Load(id uuid.UUID) (*models.Resource, error) {
	resource, err := p.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", string(p.desc.Kind), err)
	}
	if resource == nil {
		return nil, errs.NewNotFound(string(p.desc.Kind))
	}
	return resource, nil
}

// FindBySlug returns (nil, nil) on a miss; the boundary layer redirects to
// the kind's index in that case.
func (p *Pipeline) FindBySlug(slug string) (*models.Resource, error) {
	resource, err := p.store.FindBySlug(p.desc.Kind, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", string(p.desc.Kind), err)
	}
	return resource, nil
}

func (p *Pipeline) Delete(id uuid.UUID) error {
	if err := p.store.Delete(id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewNotFound(string(p.desc.Kind))
		}
		return errs.NewDatabaseError("delete", string(p.desc.Kind), err)
	}
	// The stored image, if any, stays on disk; the record is the only
	// reference to it.
	return nil
}

// Submit runs the pipeline for one form submission. target is an empty
// draft for ModeNew or the loaded resource for ModeEdit; file is nil when
// the form carried no upload, which is distinct from a rejected upload.
//
// A Result is returned for every outcome the user can fix (redirect on
// success, re-render with field errors otherwise). The error return is
// reserved for failures the boundary layer surfaces as-is: store
// unavailability, storage write failures, and the conflict left after the
// bounded slug retry. Field validation runs before the upload is written,
// so a draft failing validation never leaves a file on disk.
func (p *Pipeline) Submit(target *models.Resource, form url.Values, file *FormFile, mode Mode) (Result, error) {
	fieldErrs := Assemble(target, form, p.desc)

	if file == nil && target.Image == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "image", Message: "an image is required"})
	}
	if len(fieldErrs) > 0 {
		return ReRender(p.desc.View(mode), target, fieldErrs), nil
	}

	if file != nil {
		stored, err := p.gate.Accept(*file, p.desc.UploadDir)
		switch {
		case errors.Is(err, ErrUploadType) || errors.Is(err, ErrUploadTooLarge):
			p.logger.Info().Str("filename", file.Name).Err(err).Msg("upload rejected")
			rejection := FieldErrors{{Field: "image", Message: err.Error()}}
			return ReRender(p.desc.View(mode), target, rejection), nil
		case err != nil:
			return Result{}, errs.NewInternalErrorWithCause("storing upload", err)
		}
		target.Image = stored.Path
	}

	return p.commit(target, mode)
}

func (p *Pipeline) commit(draft *models.Resource, mode Mode) (Result, error) {
	switch mode {
	case ModeNew:
		// Two attempts: a concurrent create can take the derived slug
		// between our probe and the insert, so one re-derivation against
		// the now-visible rival is allowed before giving up.
		for attempt := 0; attempt < 2; attempt++ {
			slug, err := p.slugs.Resolve(draft.Kind, draft.Title, uuid.Nil)
			if err != nil {
				return Result{}, errs.NewDatabaseError("resolve slug for", string(draft.Kind), err)
			}
			draft.Slug = slug

			err = p.store.Add(draft)
			if err == nil {
				return Redirect(p.desc.SlugURL(draft.Slug)), nil
			}
			if !errors.Is(err, errs.ErrAlreadyExists) {
				return Result{}, errs.NewDatabaseError("create", string(draft.Kind), err)
			}
			p.logger.Warn().Str("slug", slug).Msg("slug taken by concurrent create, re-deriving")
		}
		return Result{}, errs.NewConflictError("could not derive a unique slug")

	case ModeEdit:
		// Slug stays as loaded; re-deriving on title edits would break
		// published URLs.
		if err := p.store.Update(draft); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return Result{}, errs.NewNotFound(string(draft.Kind))
			}
			return Result{}, errs.NewDatabaseError("update", string(draft.Kind), err)
		}
		return Redirect(p.desc.SlugURL(draft.Slug)), nil
	}

	return Result{}, errs.NewInternalError("unknown submission mode")
}
