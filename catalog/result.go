package catalog

import "github.com/rcooper/trailhead-backend/models"

// Result is the tagged outcome of a submission: either a redirect to the
// committed resource's canonical URL, or a re-render of the originating
// form with the draft and its field errors. Exactly one arm is populated.
type Result struct {
	RedirectPath string
	View         string
	Draft        *models.Resource
	Errors       FieldErrors
}

func Redirect(path string) Result {
	return Result{RedirectPath: path}
}

func ReRender(view string, draft *models.Resource, fieldErrs FieldErrors) Result {
	return Result{View: view, Draft: draft, Errors: fieldErrs}
}

func (r Result) Redirected() bool {
	return r.RedirectPath != ""
}
