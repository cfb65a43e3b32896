// Package swagger serves the OpenAPI description of the irrigo gateway.
package swagger

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/zones": {
            "post": {"summary": "Register an irrigation zone", "tags": ["zones"]},
            "get": {"summary": "List the caller's irrigation zones", "tags": ["zones"]}
        },
        "/zones/{id}": {
            "get": {"summary": "Fetch a zone by id", "tags": ["zones"]},
            "put": {"summary": "Update a zone's configuration", "tags": ["zones"]},
            "delete": {"summary": "Delete a zone", "tags": ["zones"]}
        },
        "/zones/{id}/schedule": {
            "post": {"summary": "Plan the zone's irrigation schedule over a forecast horizon", "tags": ["schedule"]}
        },
        "/weather/forecast": {
            "get": {"summary": "Resolve a forecast window for a location", "tags": ["weather"]}
        },
        "/weather/test": {
            "get": {"summary": "Probe the configured forecast provider", "tags": ["weather"]}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds the exported spec so the process entry point can stamp
// the deployed host before serving.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Schemes:          []string{"https", "http"},
	Title:            "Irrigo Scheduler API",
	Description:      "Irrigation scheduling for turfgrass zones: zone configuration, forecast resolution, and soil-water-balance schedule planning.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// RegisterSwagger mounts the Swagger UI under /swagger/.
func RegisterSwagger(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
