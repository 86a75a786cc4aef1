package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rcooper/trailhead-backend/catalog"
	"github.com/rcooper/trailhead-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxFormMemory bounds how much of a multipart body is held in memory
// while parsing; larger parts spill to temp files.
const maxFormMemory = 8 << 20

// resourceHandler serves one catalog kind. The same handler code backs
// both kinds; the pipeline's descriptor supplies the differences.
type resourceHandler struct {
	responder Responder
	logger    zerolog.Logger
	pipeline  *catalog.Pipeline
}

func newResourceHandler(pipeline *catalog.Pipeline) resourceHandler {
	logger := log.With().Str("handlerName", string(pipeline.Kind())+"Handler").Logger()

	return resourceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		pipeline:  pipeline,
	}
}

// list returns all resources of the kind, newest first.
func (h resourceHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := h.pipeline.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, viewResponse{
			View:      h.pipeline.Descriptor().View(catalog.ModeIndex),
			Resources: resources,
		})
	}
}

// newForm returns an empty draft for the create form.
func (h resourceHandler) newForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, viewResponse{
			View:     h.pipeline.Descriptor().View(catalog.ModeNew),
			Resource: h.pipeline.NewDraft(),
		})
	}
}

// editForm loads the edit target by ID.
func (h resourceHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := resourceIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		resource, err := h.pipeline.Load(id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, viewResponse{
			View:     h.pipeline.Descriptor().View(catalog.ModeEdit),
			Resource: resource,
		})
	}
}

// show resolves a resource by slug; a miss redirects to the kind's index.
func (h resourceHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		resource, err := h.pipeline.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if resource == nil {
			http.Redirect(w, r, h.pipeline.Descriptor().BasePath, http.StatusSeeOther)
			return
		}

		h.responder.WriteJSON(w, viewResponse{
			View:     h.pipeline.Descriptor().View(catalog.ModeShow),
			Resource: resource,
		})
	}
}

// create runs the pipeline on an empty draft.
func (h resourceHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, cleanup, apiErr := h.parseSubmission(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		defer cleanup()

		result, err := h.pipeline.Submit(h.pipeline.NewDraft(), r.PostForm, file, catalog.ModeNew)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.writeResult(w, r, result)
	}
}

// update loads the target by ID and re-runs the pipeline on it. The slug
// is never re-derived here.
func (h resourceHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := resourceIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		target, err := h.pipeline.Load(id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		file, cleanup, apiErr := h.parseSubmission(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		defer cleanup()

		result, err := h.pipeline.Submit(target, r.PostForm, file, catalog.ModeEdit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.writeResult(w, r, result)
	}
}

// deleteResource removes the record by ID and redirects to the index. The
// stored image file is not cleaned up.
func (h resourceHandler) deleteResource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, apiErr := resourceIDParam(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.pipeline.Delete(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.Redirect(w, r, h.pipeline.Descriptor().BasePath, http.StatusSeeOther)
	}
}

// parseSubmission parses the multipart form and extracts the optional
// image part. A missing file part returns a nil file, which the pipeline
// treats differently from a rejected one.
func (h resourceHandler) parseSubmission(r *http.Request) (*catalog.FormFile, func(), error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.logger.Warn().Err(err).Msg("failed to parse multipart form")
		return nil, nil, errs.NewBadRequestError("malformed form submission")
	}

	part, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, errs.NewBadRequestError("unreadable image upload")
	}

	file := &catalog.FormFile{
		Name:    header.Filename,
		Size:    header.Size,
		Content: part,
	}
	return file, func() { part.Close() }, nil
}

// writeResult maps a pipeline outcome onto the wire: 303 to the canonical
// slug URL on success, 422 with the draft and field errors otherwise.
func (h resourceHandler) writeResult(w http.ResponseWriter, r *http.Request, result catalog.Result) {
	if result.Redirected() {
		http.Redirect(w, r, result.RedirectPath, http.StatusSeeOther)
		return
	}

	// Content-Type must land before the status line; headers set after
	// WriteHeader are dropped.
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	h.responder.WriteJSON(w, viewResponse{
		View:     result.View,
		Resource: result.Draft,
		Errors:   result.Errors,
	})
}

func resourceIDParam(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "resourceID")
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing resourceID")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid resourceID")
	}
	return id, nil
}
