// Package docs is generated by swaggo/swag and trimmed by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "JobMate Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/functions/v1/generate-cv-with-groq": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Generate an HTML CV from a job title and the stored profile",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Configuration or upstream error"}
                }
            }
        },
        "/functions/v1/generate-cv": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Generate a CV from inline profile data",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Configuration or upstream error"}
                }
            }
        },
        "/functions/v1/generate-cover-letter": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Generate a cover letter",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Configuration or upstream error"}
                }
            }
        },
        "/functions/v1/jobmate-assistant": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Chat with the career assistant",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Session not found"},
                    "500": {"description": "Configuration or upstream error"}
                }
            }
        },
        "/functions/v1/interview-coach": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Score an interview answer",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing required parameters"}
                }
            }
        },
        "/functions/v1/fetch-jobs": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Ingest listings from the configured job source",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "500": {"description": "Upstream error"}
                }
            }
        },
        "/functions/v1/linkedin-jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Search LinkedIn listings, falling back to generated listings",
                "parameters": [
                    {"type": "string", "name": "query", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "experience", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/functions/v1/send-whatsapp-alerts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Dispatch a WhatsApp job alert",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Alerts not configured"},
                    "500": {"description": "Upstream error"}
                }
            }
        },
        "/functions/v1/scan-cv": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Extract structured fields from an uploaded CV",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Upstream error"}
                }
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
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "JobMate API",
	Description:      "Career assistant backend: CV and cover letter generation, job search, interview coaching and job alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
