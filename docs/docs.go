// Package docs содержит спецификацию OpenAPI для Swagger UI (/docs/index.html).
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
        "CookieAuth": {"type": "apiKey", "in": "header", "name": "Cookie"}
    },
    "paths": {
        "/health": {"get": {"tags": ["Health"], "summary": "Проверка живости", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Проверка готовности", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}},
                          "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Response"}}}}},
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "Регистрация пользователя", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/register.Request"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/register.Response"}},
                          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                          "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Вход пользователя", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/login.Response"}},
                          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                          "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Выход", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}}}}},
        "/auth/check": {"get": {"tags": ["Auth"], "summary": "Проверка сессии", "produces": ["application/json"],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthStatus"}}}}},
        "/auth/forgot-password": {"post": {"tags": ["Auth"], "summary": "Запрос сброса пароля", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/forgot.Request"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                          "400": {"description": "Email required", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                          "404": {"description": "User not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                          "500": {"description": "Failed to send email", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}},
        "/auth/reset-password": {"post": {"tags": ["Auth"], "summary": "Сброс пароля", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/reset.Request"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                          "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                          "404": {"description": "User not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}},
        "/testimonials": {
            "get": {"tags": ["Testimonials"], "summary": "Список отзывов", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Testimonials"], "summary": "Добавить отзыв", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/request-doctor": {"post": {"tags": ["Doctor"], "summary": "Заявка на консультацию врача", "consumes": ["application/json"], "produces": ["application/json"],
            "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/analyze-lab": {"post": {"tags": ["Lab"], "summary": "Анализ результатов", "consumes": ["application/json"], "produces": ["application/json"],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/predict": {"post": {"security": [{"CookieAuth": []}], "tags": ["Consultations"], "summary": "Предсказание по симптомам",
            "consumes": ["application/json"], "produces": ["application/json"],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Symptoms required"},
                          "401": {"description": "Unauthorized"}, "503": {"description": "ML service unavailable"}}}},
        "/history": {"get": {"security": [{"CookieAuth": []}], "tags": ["Consultations"], "summary": "История консультаций", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "limit", "in": "query"}, {"type": "integer", "name": "offset", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}}
    },
    "definitions": {
        "health.Response": {"type": "object", "properties": {"ok": {"type": "boolean"}}},
        "models.AuthStatus": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "username": {"type": "string"}}},
        "register.Request": {"type": "object", "properties": {"username": {"type": "string", "example": "alice"}, "email": {"type": "string", "example": "a@x.io"}, "password": {"type": "string", "example": "pw1"}}},
        "register.Response": {"type": "object", "properties": {"message": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}}},
        "login.Request": {"type": "object", "properties": {"username": {"type": "string", "example": "alice"}, "password": {"type": "string", "example": "pw1"}}},
        "login.Response": {"type": "object", "properties": {"message": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "token": {"type": "string"}}},
        "forgot.Request": {"type": "object", "properties": {"email": {"type": "string"}}},
        "reset.Request": {"type": "object", "properties": {"token": {"type": "string"}, "password": {"type": "string"}}},
        "response.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "response.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}}
    }
}`

// SwaggerInfo метаданные API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "MyAI API",
	Description:      "Аутентификация, отзывы, заявки к врачу, анализы и консультации.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
