package api

import (
	"path/filepath"

	"github.com/rcooper/trailhead-backend/catalog"
	"github.com/rcooper/trailhead-backend/config"
	"github.com/rcooper/trailhead-backend/database"
)

// initializeHandlers builds one resource handler per catalog kind. Both
// share the store and the upload gate; the kind descriptors carry every
// per-kind difference.
func initializeHandlers(database database.Database, c map[string]string) *routeHandlers {
	maxBytes := config.GetInt64(c, config.KeyUploadMaxBytes, catalog.DefaultMaxUploadBytes)
	gate := catalog.NewUploadGate(maxBytes, catalog.TimestampNamer)
	store := database.ResourceRepo()

	articleDesc := catalog.ArticleDescriptor(
		config.GetString(c, config.KeyArticleDir, "uploads"))
	productDesc := catalog.ProductDescriptor(
		config.GetString(c, config.KeyProductDir, filepath.Join("public", "products")))

	return &routeHandlers{
		articleHandler: newResourceHandler(catalog.NewPipeline(articleDesc, store, gate)),
		productHandler: newResourceHandler(catalog.NewPipeline(productDesc, store, gate)),
	}
}
