// Package docs registers the OpenAPI description served at /swagger/.
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
        "/todos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "按创建时间倒序返回集合中的全部文档，过滤由客户端完成",
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "获取待办事项列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "创建一个新的文档，ID 和时间戳由服务端生成",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "创建待办事项",
                "parameters": [
                    {
                        "description": "待办事项内容",
                        "name": "todo",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.CreateTodoRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/todos/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "获取统计信息",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/todos/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "合并提供的字段并刷新 updatedAt，未提供的字段保持不变",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "更新待办事项",
                "parameters": [
                    {"type": "string", "description": "待办事项ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "待办事项更新内容",
                        "name": "todo",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.UpdateTodoRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "根据 ID 删除文档，不存在时返回 404",
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "删除待办事项",
                "parameters": [
                    {"type": "string", "description": "待办事项ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CreateTodoRequest": {
            "type": "object",
            "properties": {
                "backgroundColor": {"type": "string", "example": "#FFF9C4"},
                "category": {"type": "string", "example": "SHOPPING"},
                "description": {"type": "string", "example": "Milk, bread, and fruits"},
                "isCompleted": {"type": "boolean", "example": false},
                "priority": {"type": "integer", "example": 2},
                "title": {"type": "string", "example": "Buy groceries"}
            }
        },
        "handler.UpdateTodoRequest": {
            "type": "object",
            "properties": {
                "backgroundColor": {"type": "string", "example": "#81C784"},
                "category": {"type": "string", "example": "WORK"},
                "description": {"type": "string", "example": "Finish and send by EOD"},
                "isCompleted": {"type": "boolean", "example": true},
                "priority": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "Update weekly report"}
            }
        },
        "handler.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.ErrorInfo"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "todo-board API",
	Description:      "todos 文档集合的 HTTP 接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
