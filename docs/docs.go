// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "API Support", "email": "support@example.com"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}}}},
        "/categories": {"get": {"tags": ["dictionaries"], "summary": "List furniture categories", "responses": {"200": {"description": "OK"}}}},
        "/materials": {"get": {"tags": ["dictionaries"], "summary": "List materials", "responses": {"200": {"description": "OK"}}}},
        "/specializations": {"get": {"tags": ["dictionaries"], "summary": "List artisan specializations", "responses": {"200": {"description": "OK"}}}},
        "/generations": {
            "get": {"security": [{"Bearer": []}], "tags": ["generations"], "summary": "List the caller's generated images", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["generations"], "summary": "Generate a furniture concept image",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.GenerateImageRequest"}}],
                "responses": {"201": {"description": "Created"}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/generations/{image_id}": {"get": {"security": [{"Bearer": []}], "tags": ["generations"], "summary": "Get one of the caller's generated images",
            "parameters": [{"type": "string", "in": "path", "name": "image_id", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/projects": {
            "get": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "Browse projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "Create a project",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateProjectRequest"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/projects/mine": {"get": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "List the caller's projects", "responses": {"200": {"description": "OK"}}}},
        "/projects/{project_id}": {"get": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "Get a project",
            "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/projects/{project_id}/status": {"patch": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "Change a project's status",
            "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateStatusRequest"}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}},
        "/projects/{project_id}/accept": {"post": {"security": [{"Bearer": []}], "tags": ["projects"], "summary": "Accept a proposal",
            "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.AcceptProposalRequest"}}],
            "responses": {"200": {"description": "OK"}}}},
        "/projects/{project_id}/proposals": {
            "get": {"security": [{"Bearer": []}], "tags": ["proposals"], "summary": "List a project's proposals",
                "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "consumes": ["multipart/form-data"], "tags": ["proposals"], "summary": "Submit a proposal",
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "number", "in": "formData", "name": "price", "required": true},
                    {"type": "string", "in": "formData", "name": "message"},
                    {"type": "file", "in": "formData", "name": "attachment"}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/proposals/mine": {"get": {"security": [{"Bearer": []}], "tags": ["proposals"], "summary": "List the caller's proposals", "responses": {"200": {"description": "OK"}}}},
        "/projects/{project_id}/reviews": {"post": {"security": [{"Bearer": []}], "tags": ["reviews"], "summary": "Review the other party of a completed project",
            "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateReviewRequest"}}],
            "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}},
        "/artisans": {"get": {"tags": ["artisans"], "summary": "Browse public artisans", "responses": {"200": {"description": "OK"}}}},
        "/artisans/{artisan_id}": {"get": {"tags": ["artisans"], "summary": "Get an artisan's public profile",
            "parameters": [{"type": "string", "in": "path", "name": "artisan_id", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/artisans/{artisan_id}/reviews": {"get": {"tags": ["reviews"], "summary": "List reviews an artisan received",
            "parameters": [{"type": "string", "in": "path", "name": "artisan_id", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/artisans/me/profile": {
            "get": {"security": [{"Bearer": []}], "tags": ["artisans"], "summary": "Get the caller's business profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["artisans"], "summary": "Create or update the caller's business profile",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpsertArtisanProfileRequest"}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/artisans/me/profile/visibility": {"patch": {"security": [{"Bearer": []}], "tags": ["artisans"], "summary": "Publish or hide the caller's profile",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.VisibilityRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/artisans/me/portfolio": {"post": {"security": [{"Bearer": []}], "consumes": ["multipart/form-data"], "tags": ["artisans"], "summary": "Add a portfolio image",
            "parameters": [{"type": "file", "in": "formData", "name": "image", "required": true}], "responses": {"201": {"description": "Created"}}}},
        "/artisans/me/portfolio/{image_id}": {"delete": {"security": [{"Bearer": []}], "tags": ["artisans"], "summary": "Remove a portfolio image",
            "parameters": [{"type": "string", "in": "path", "name": "image_id", "required": true}],
            "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}}
    },
    "definitions": {
        "models.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}}},
        "models.ErrorResponse": {"type": "object", "properties": {"error": {"$ref": "#/definitions/models.ErrorBody"}}},
        "models.ErrorBody": {"type": "object", "properties": {
            "code": {"type": "string", "example": "PROPOSAL_ALREADY_EXISTS"},
            "message": {"type": "string"},
            "details": {"type": "array", "items": {"$ref": "#/definitions/models.FieldError"}}
        }},
        "models.FieldError": {"type": "object", "properties": {"field": {"type": "string"}, "rule": {"type": "string"}, "param": {"type": "string"}}},
        "models.GenerateImageRequest": {"type": "object", "required": ["prompt"], "properties": {"prompt": {"type": "string", "maxLength": 1000, "minLength": 10}}},
        "models.CreateProjectRequest": {"type": "object", "required": ["generated_image_id", "category_id", "material_id"], "properties": {
            "generated_image_id": {"type": "string"}, "category_id": {"type": "integer"}, "material_id": {"type": "integer"},
            "dimensions": {"type": "string"}, "budget": {"type": "string"}
        }},
        "models.UpdateStatusRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["open", "in_progress", "completed", "closed"]}}},
        "models.AcceptProposalRequest": {"type": "object", "required": ["proposal_id"], "properties": {"proposal_id": {"type": "string"}}},
        "models.CreateReviewRequest": {"type": "object", "required": ["rating"], "properties": {"rating": {"type": "integer", "maximum": 5, "minimum": 1}, "comment": {"type": "string"}}},
        "models.UpsertArtisanProfileRequest": {"type": "object", "required": ["company_name", "nip"], "properties": {
            "company_name": {"type": "string"}, "nip": {"type": "string"},
            "specialization_ids": {"type": "array", "items": {"type": "integer"}}
        }},
        "models.VisibilityRequest": {"type": "object", "required": ["is_public"], "properties": {"is_public": {"type": "boolean"}}}
    },
    "securityDefinitions": {
        "Bearer": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Artisan Marketplace API",
	Description:      "Marketplace connecting clients who design furniture with AI-generated concepts and artisans who bid to build it.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
