package api

import (
	"github.com/go-chi/chi/v5"
)

// setupCatalogRoutes mounts the five read operations and the mutating trio
// for each catalog kind under the kind's base path.
func setupCatalogRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		for _, h := range []resourceHandler{handlers.articleHandler, handlers.productHandler} {
			r.Route(h.pipeline.Descriptor().BasePath, func(r chi.Router) {
				r.Get("/", h.list())
				r.Get("/new", h.newForm())
				r.Get("/edit/{resourceID}", h.editForm())
				r.Get("/{slug}", h.show())

				r.Post("/", h.create())
				r.Put("/{resourceID}", h.update())
				r.Delete("/{resourceID}", h.deleteResource())
			})
		}
	})
}
