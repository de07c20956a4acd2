// Package docs registers the OpenAPI spec served at /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/landing/teaser": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["landing"],
                "summary": "Landing-page teaser",
                "responses": {
                    "200": {"description": "OK"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/onboarding/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Get onboarding state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/onboarding/advance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Advance onboarding",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/onboarding/cv/text": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Parse CV text",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Extraction failed"}}
            }
        },
        "/onboarding/cv/document": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Parse CV document",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Extraction failed"}}
            }
        },
        "/onboarding/photo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Upload profile photo",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/onboarding/assessment/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Submit assessment answers",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "No assessment in progress"}
                }
            }
        },
        "/profiles/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Get my profile",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Update my profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/profiles/me/passport": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Get my career passport",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/profiles/me/analysis": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Generate holistic profile analysis",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Analysis failed"}}
            }
        },
        "/marketplace/candidates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["marketplace"],
                "summary": "List certified candidates",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Recruiters only"}}
            }
        },
        "/recruiter/suggestions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recruiter"],
                "summary": "AI candidate suggestions",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Recruiters only"}}
            }
        },
        "/recruiter/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recruiter"],
                "summary": "List my job postings",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recruiter"],
                "summary": "Create a job posting",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List active job postings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/jobs/matching": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs matched to me",
                "responses": {"200": {"description": "OK"}}
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Masar Backend API",
	Description:      "Talent marketplace backend: AI-assisted onboarding, certification assessments and recruiter matching.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
