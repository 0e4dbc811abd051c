// Package openapi builds the Huma API description and serves Swagger UI for it.
package openapi

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
)

const (
	// Title is the API title shown in the OpenAPI document.
	Title = "Infiniti Drive API"

	// SpecPath is where Huma serves the generated OpenAPI document.
	SpecPath = "/openapi"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Infiniti Drive API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// Config returns the Huma configuration shared by the server and the spec
// export command. Huma's bundled docs page is disabled in favour of /swagger.
func Config(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.Info.Description = "Catalogue, listing detail, and enquiry endpoints for the Infiniti Drive used-motorcycle showroom."
	cfg.OpenAPIPath = SpecPath
	cfg.DocsPath = ""
	return cfg
}

// NewAPI attaches a Huma API to the Echo instance.
func NewAPI(e *echo.Echo, version string) huma.API {
	return humaecho.New(e, Config(version))
}

// RegisterRoutes adds the Swagger UI endpoints to the Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
