package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// DocumentURL is where the router serves the raw API document.
const DocumentURL = "/openapi.yml"

// Handler serves the swagger UI pointed at specURL.
func Handler(specURL string) http.Handler {
	if specURL == "" {
		specURL = DocumentURL
	}
	return httpSwagger.Handler(httpSwagger.URL(specURL))
}

// Load parses and validates the OpenAPI document at path.
func Load(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return doc, nil
}
