// Package swagger holds the OpenAPI document served at /swagger/doc.json.
package swagger

import (
	"encoding/json"
	"strings"

	"lecturer/internal/api/v1/dto"

	"github.com/swaggo/swag"
)

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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"], "summary": "Deep health check", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Status"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Status"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"], "summary": "Readiness probe", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Status"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Status"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "tags": ["health"], "summary": "Liveness probe", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Status"}}}
            }
        },
        "/files": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["files"], "summary": "Upload a file",
                "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "folder", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.FileUploadResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["files"], "summary": "Delete a file",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FileDeleteDTO"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/files/signed-url": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["files"], "summary": "Get a signed download URL",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "key", "in": "query", "required": true},
                    {"type": "integer", "name": "expiresIn", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SignedURLResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/lecturers/me": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["lecturers"], "summary": "Get the lecturer profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Lecturer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["lecturers"], "summary": "Create the lecturer profile",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "lecturer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LecturerCreateDTO"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Lecturer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/lecturers/me/avatar": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["lecturers"], "summary": "Replace the avatar",
                "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Lecturer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/courses": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["courses"], "summary": "List courses",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CourseResponseDTO"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["courses"], "summary": "Create a new course",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "course", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseCreateDTO"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CourseResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/courses/{courseId}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["courses"], "summary": "Get a course",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "courseId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CourseResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["courses"], "summary": "Update a course",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "courseId", "in": "path", "required": true},
                    {"name": "course", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseUpdateDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CourseResponseDTO"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["courses"], "summary": "Delete a course",
                "parameters": [{"type": "string", "name": "courseId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/courses/{courseId}/materials": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["materials"], "summary": "List course materials",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "courseId", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MaterialResponseDTO"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["materials"], "summary": "Upload course material",
                "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "courseId", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "title", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MaterialResponseDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/materials/{materialId}/download": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["materials"], "summary": "Get a material download link",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "materialId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MaterialDownloadDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/materials/{materialId}": {
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["materials"], "summary": "Delete a material",
                "parameters": [{"type": "string", "name": "materialId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        }
    },
    "definitions": {
        "health.Status": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string", "format": "date-time"},
                "uptime": {"type": "number", "example": 42.5},
                "database": {"type": "string", "example": "connected"},
                "error": {"type": "string"},
                "reason": {"type": "string", "example": "Database connection failed"}
            }
        },
        "dto.ErrorResponseDTO": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "error"}, "message": {"type": "string"}}
        },
        "dto.FileUploadResponseDTO": {
            "type": "object",
            "properties": {
                "url": {"type": "string", "example": "https://lecturer-media.s3.ap-south-1.amazonaws.com/uploads/1b9d-syllabus.pdf"},
                "key": {"type": "string", "example": "uploads/1b9d-syllabus.pdf"}
            }
        },
        "dto.FileDeleteDTO": {
            "type": "object",
            "properties": {"url": {"type": "string"}, "key": {"type": "string"}}
        },
        "dto.SignedURLResponseDTO": {
            "type": "object",
            "properties": {"url": {"type": "string"}, "expires_in": {"type": "integer", "example": 3600}}
        },
        "dto.MaterialDownloadDTO": {
            "type": "object",
            "properties": {"url": {"type": "string"}, "expires_in": {"type": "integer", "example": 900}}
        },
        "dto.LecturerCreateDTO": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "payroll_id": {"type": "string"}
            }
        },
        "dto.Lecturer": __LECTURER_SCHEMA__,
        "dto.CourseCreateDTO": {
            "type": "object",
            "required": ["title"],
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "is_default": {"type": "boolean"}}
        },
        "dto.CourseUpdateDTO": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}}
        },
        "dto.CourseResponseDTO": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "is_default": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "dto.MaterialResponseDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "course_id": {"type": "string"},
                "title": {"type": "string"},
                "file_url": {"type": "string"},
                "content_type": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Lecturer API",
	Description:      "Lecturer backend: profiles, courses, course materials and object storage",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// schemaDefinition renders a dto.Schema as a swagger definition, hidden fields excluded.
func schemaDefinition(s dto.Schema) string {
	props := map[string]any{}
	required := []string{}
	for _, f := range s.Fields {
		if f.Hidden {
			continue
		}
		prop := map[string]any{"type": string(f.Type)}
		if f.Type == dto.TypeDateTime {
			prop["type"] = "string"
			prop["format"] = "date-time"
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	def, err := json.Marshal(map[string]any{
		"type":       "object",
		"required":   required,
		"properties": props,
		"example":    s.Example(),
	})
	if err != nil {
		return `{"type": "object"}`
	}
	return string(def)
}

func init() {
	SwaggerInfo.SwaggerTemplate = strings.Replace(docTemplate, "__LECTURER_SCHEMA__", schemaDefinition(dto.LecturerSchema), 1)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
