package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Timetable DSS API",
        "description": "Generates, ranks and exports weekly class timetable options",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Planner", "description": "Timetable option generation and evaluation"},
        {"name": "Observability", "description": "Health and runtime counters"}
    ],
    "paths": {
        "/planner/defaults": {
            "get": {
                "tags": ["Planner"],
                "summary": "Sample constraints and reference catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/options": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate three ranked timetable options",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateOptionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid constraints", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/proposals/{id}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Fetch a generated proposal",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/proposals/{id}/options/{optionId}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Evaluate one option",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "optionId", "in": "path", "required": true, "type": "string", "enum": ["A", "B", "C"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown option", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/proposals/{id}/options/{optionId}/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Export an option as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "optionId", "in": "path", "required": true, "type": "string", "enum": ["A", "B", "C"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/exports/{token}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Download an exported timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "410": {"description": "Link invalid or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/status": {
            "get": {
                "tags": ["Observability"],
                "summary": "Planner runtime counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Subject": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "credits": {"type": "integer", "minimum": 0},
                "teacher": {"type": "string"}
            },
            "required": ["name", "code", "teacher"]
        },
        "Preferences": {
            "type": "object",
            "properties": {
                "avoidMorning": {"type": "boolean"},
                "avoidLastPeriod": {"type": "boolean"},
                "noHeavySubjectsConsecutive": {"type": "boolean"},
                "maxTeacherConsecutivePeriods": {"type": "boolean"},
                "optimizeRoomUsage": {"type": "boolean"}
            }
        },
        "GenerateOptionsRequest": {
            "type": "object",
            "properties": {
                "classrooms": {"type": "integer"},
                "teachers": {"type": "integer"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/Subject"}},
                "periodsPerDay": {"type": "integer", "minimum": 1, "maximum": 16},
                "daysPerWeek": {"type": "integer", "minimum": 1, "maximum": 7},
                "maxTeacherPeriodsPerDay": {"type": "integer", "minimum": 1},
                "maxStudentPeriodsPerDay": {"type": "integer", "minimum": 1},
                "preferences": {"$ref": "#/definitions/Preferences"}
            },
            "required": ["subjects", "periodsPerDay", "daysPerWeek", "maxTeacherPeriodsPerDay", "maxStudentPeriodsPerDay"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
