//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "fasttextd/docs"
)

// SwaggerEnabled reports whether /swagger/* is served by this build.
const SwaggerEnabled = true

// MountSwagger serves the registered API document and the Swagger UI.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
