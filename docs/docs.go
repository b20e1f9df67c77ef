// Package docs registers the reviewdesk OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Submit a rating and review",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.SubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/feedback/ratings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "List selectable ratings with labels",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.RatingOption"}}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Staff login",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/admin/feedback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Stored feedback, newest first, optionally projected onto one view",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "view", "type": "string", "enum": ["reviews", "responses", "summaries", "actions"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.FeedbackViewPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Key metrics and rating distribution",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DashboardStats"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.SubmitRequest": {
            "type": "object",
            "properties": {
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "review": {"type": "string"}
            }
        },
        "model.SubmitResponse": {
            "type": "object",
            "properties": {
                "reply": {"type": "string"},
                "classification": {"type": "string", "enum": ["query", "positive", "negative", "neutral"]},
                "persisted": {"type": "boolean"},
                "pending": {"type": "boolean"},
                "recordId": {"type": "string"}
            }
        },
        "model.RatingOption": {
            "type": "object",
            "properties": {
                "value": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "staffId": {"type": "string"}
            }
        },
        "model.ViewItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "rating": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "model.FeedbackViewPage": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "header": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/model.ViewItem"}},
                "empty": {"type": "boolean"}
            }
        },
        "model.DashboardStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "averageRating": {"type": "number"},
                "positive": {"type": "integer"},
                "negative": {"type": "integer"},
                "distribution": {"type": "object", "additionalProperties": {"type": "integer"}},
                "empty": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "reviewdesk API",
	Description:      "Customer feedback intake with automated replies and a staff dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
