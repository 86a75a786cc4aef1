package api

import (
	"github.com/rcooper/trailhead-backend/catalog"
	"github.com/rcooper/trailhead-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	articleHandler resourceHandler
	productHandler resourceHandler
}

// viewResponse is the payload handed to the external renderer: the view
// descriptor to draw, the resource data, and any field errors to show
// against the form.
type viewResponse struct {
	View      string              `json:"view"`
	Resource  *models.Resource    `json:"resource,omitempty"`
	Resources []*models.Resource  `json:"resources,omitempty"`
	Errors    catalog.FieldErrors `json:"errors,omitempty"`
}
