// Package docs serves the OpenAPI 2.0 document for the HTTP API.
// Keep it in step with the handler annotations; `swag init -g cmd/api/main.go` regenerates it.
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
    "securityDefinitions": {
        "UserID": {"type": "apiKey", "in": "header", "name": "X-User-ID"},
        "UserRole": {"type": "apiKey", "in": "header", "name": "X-User-Role"}
    },
    "security": [{"UserID": [], "UserRole": []}],
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/courses/{course_id}/documents": {
            "get": {
                "tags": ["documents"],
                "summary": "List published documents of a course",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "course_id", "in": "path", "required": true},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "tags": ["documents"],
                "summary": "Submit a course document for review",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "course_id", "in": "path", "required": true},
                    {"type": "file", "description": "Document (pdf, docx, pptx, png, jpg, txt)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "lecture-material | note | past-questions (spaced and singular spellings accepted)", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "description": "Academic term, YYYY/YYYY; required for past questions", "name": "term_tag", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.documentView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/documents": {
            "get": {
                "tags": ["review"],
                "summary": "List documents for review",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "pending | approved | rejected", "name": "status", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reviewerList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/documents/{id}": {
            "get": {
                "tags": ["documents"],
                "summary": "Get a document",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Document ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.documentView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "tags": ["review"],
                "summary": "Review a document",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Document ID", "name": "id", "in": "path", "required": true},
                    {"description": "Decision and metadata", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["review"],
                "summary": "Delete a document",
                "parameters": [
                    {"type": "string", "description": "Document ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/documents/{id}/url": {
            "get": {
                "tags": ["documents"],
                "summary": "Get a download URL",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Document ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.documentView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "canonical_name": {"type": "string"},
                "category": {"type": "string"},
                "term_tag": {"type": "string"},
                "extension": {"type": "string"},
                "content_type": {"type": "string"},
                "size": {"type": "integer"},
                "page_count": {"type": "integer"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "course_id": {"type": "string"},
                "uploader_id": {"type": "string"},
                "created_at": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "handler.reviewerView": {
            "allOf": [
                {"$ref": "#/definitions/handler.documentView"},
                {
                    "type": "object",
                    "properties": {
                        "original_name": {"type": "string"},
                        "staging_path": {"type": "string"},
                        "permanent_path": {"type": "string"},
                        "rejection_reason": {"type": "string"},
                        "reviewer_id": {"type": "string"},
                        "updated_at": {"type": "string"}
                    }
                }
            ]
        },
        "handler.documentList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.documentView"}},
                "total": {"type": "integer"}
            }
        },
        "handler.reviewerList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.reviewerView"}},
                "total": {"type": "integer"}
            }
        },
        "handler.updateDocumentRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "rejection_reason": {"type": "string"},
                "category": {"type": "string"},
                "term_tag": {"type": "string"}
            }
        },
        "handler.reviewResponse": {
            "type": "object",
            "properties": {
                "document": {"$ref": "#/definitions/handler.reviewerView"},
                "action": {"type": "string", "enum": ["none", "promote", "purge"]},
                "deleted": {"type": "boolean"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "fields": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "properties": {
                                    "field": {"type": "string"},
                                    "code": {"type": "string"},
                                    "message": {"type": "string"}
                                }
                            }
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Course Documents API",
	Description:      "Submission, review and publication of course documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
