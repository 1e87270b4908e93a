// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/web/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/public/service-requests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Request a pool service",
                "parameters": [
                    {"description": "Service request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ServiceRequestForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreatedResponse"}},
                    "422": {"description": "Unprocessable Entity"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/public/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Send a contact message",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreatedResponse"}},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/public/job-applications": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Apply for a job",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreatedResponse"}},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/job-applicants/{id}/hire": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["job-applicants"],
                "summary": "Hire an applicant",
                "parameters": [
                    {"type": "string", "description": "Applicant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        }
    },
    "definitions": {
        "dto.CreatedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.ServiceRequestForm": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "service": {"type": "string"},
                "zip": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pool Service API",
	Description:      "Public intake, back office and technician portal of the pool service business.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
