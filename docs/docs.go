package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "TaskBoard API Documentation",
        "title": "TaskBoard API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with username and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string",
                                    "example": "sparky"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "changeme"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List Tasks",
                "description": "List tasks with optional filters (assignee, status, priority, archive, dormant, sort)",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {"in": "query", "name": "assignee", "type": "string", "enum": ["sparky", "assistant"]},
                    {"in": "query", "name": "status", "type": "string", "enum": ["hold", "backlog", "in_progress", "sprint", "daily", "done"]},
                    {"in": "query", "name": "priority", "type": "string", "enum": ["low", "medium", "high", "urgent"]},
                    {"in": "query", "name": "archive", "type": "string", "enum": ["active", "archived", "all"]},
                    {"in": "query", "name": "dormant", "type": "boolean"},
                    {"in": "query", "name": "sort", "type": "string", "enum": ["recent", "last_worked"]},
                    {"in": "query", "name": "limit", "type": "integer"},
                    {"in": "query", "name": "offset", "type": "integer"}
                ],
                "responses": {
                    "200": {
                        "description": "Paginated task list"
                    }
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create Task",
                "description": "Create a task; status defaults to backlog and priority to medium",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Task created"
                    },
                    "422": {
                        "description": "Validation failed"
                    }
                }
            }
        },
        "/tasks/{id}/advance": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Advance Task",
                "description": "Move the task one step forward in the status workflow; no-op at done",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task after the move"
                    },
                    "404": {
                        "description": "Task not found"
                    }
                }
            }
        },
        "/tasks/{id}/activities": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Task Activity History",
                "description": "Most recent activity records for a task, newest first",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Activity records"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskBoard API",
	Description:      "TaskBoard API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
