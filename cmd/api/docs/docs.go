// Package docs registers the OpenAPI description served on /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o cmd/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/categories": {
            "get": {
                "description": "Returns every category as an id to type map",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoriesResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}/questions": {
            "get": {
                "description": "Returns one page of the category's questions; total_questions counts the whole category",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List the questions of a category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number, starting at 1", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoryQuestionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/questions": {
            "get": {
                "description": "Returns one page of ten questions ordered by id, with the category map",
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "List questions",
                "parameters": [
                    {"type": "integer", "description": "Page number, starting at 1", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuestionsPageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "With a non-empty searchTerm, returns every question whose text contains it (case-insensitive).\nOtherwise creates a question from question, answer, category and difficulty.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Create a question or search questions",
                "parameters": [
                    {"description": "Question or search term", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateQuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SearchResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/questions/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Delete a question",
                "parameters": [
                    {"type": "integer", "description": "Question ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes": {
            "post": {
                "description": "Returns a random question of the category (0 for all) that is not in previous_questions.\nThe question field is omitted once every question has been played.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Draw the next quiz question",
                "parameters": [
                    {"description": "Quiz state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.QuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CategoriesResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "categories": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.CategoryQuestionsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionResponse"}},
                "total_questions": {"type": "integer"},
                "current_category": {"type": "string"}
            }
        },
        "dto.CreateQuestionRequest": {
            "description": "Create a question, or search when searchTerm is set",
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "answer": {"type": "string"},
                "category": {"type": "integer"},
                "difficulty": {"type": "integer"},
                "searchTerm": {"type": "string"}
            }
        },
        "dto.DeleteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "question-id": {"type": "integer"}
            }
        },
        "dto.ErrorResponse": {
            "description": "Error response",
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "dto.QuestionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "question": {"type": "string"},
                "answer": {"type": "string"},
                "category": {"type": "integer"},
                "difficulty": {"type": "integer"}
            }
        },
        "dto.QuestionsPageResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionResponse"}},
                "totalQuestions": {"type": "integer"},
                "categories": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.QuizCategory": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "dto.QuizRequest": {
            "description": "Next quiz question request",
            "type": "object",
            "properties": {
                "quiz_category": {"$ref": "#/definitions/dto.QuizCategory"},
                "previous_questions": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "dto.QuizResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "question": {"$ref": "#/definitions/dto.QuestionResponse"}
            }
        },
        "dto.SearchResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Trivia API",
	Description:      "Question bank and quiz backend for the trivia game.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
