// Package docs holds the generated OpenAPI document for the API binary.
// Regenerate with: swag init -g cmd/safetymapper-api/main.go -o internal/services/api/docs --v3.1 --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "servers": [
    {"url": "{{.BasePath}}"}
  ],
  "paths": {}
}`

// SwaggerInfoapi holds exported Swagger Info so clients can modify it
var SwaggerInfoapi = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SafetyMapper API",
	Description:      "Route risk scoring and content moderation service",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
}

// SwaggerInfo aliases the instance spec for callers that read the doc directly
var SwaggerInfo = SwaggerInfoapi

func init() {
	swag.Register(SwaggerInfoapi.InstanceName(), SwaggerInfoapi)
}
