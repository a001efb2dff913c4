package api

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
        "/health": {
            "get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/decode": {
            "post": {"tags": ["replays"], "summary": "Decode a replay without storing it",
                "consumes": ["application/octet-stream"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "filename", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "413": {"description": "Too large"}, "422": {"description": "Invalid replay"}}}
        },
        "/matches": {
            "get": {"tags": ["matches"], "summary": "List matches", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["matches"], "summary": "Upload a replay", "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "match-date", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad request"},
                    "409": {"description": "Duplicate"}, "413": {"description": "Too large"}, "422": {"description": "Invalid replay"}}}
        },
        "/matches/{hash}": {
            "get": {"tags": ["matches"], "summary": "Get a match", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["matches"], "summary": "Edit a match", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "hash", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["matches"], "summary": "Delete a match", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/matches/{hash}/download": {
            "get": {"tags": ["matches"], "summary": "Download a replay", "produces": ["application/octet-stream"],
                "parameters": [{"type": "string", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/leaderboard": {
            "get": {"tags": ["stats"], "summary": "Leaderboard", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/players/{puuid}": {
            "get": {"tags": ["stats"], "summary": "Player profile", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "puuid", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/stats": {
            "get": {"tags": ["diagnostics"], "summary": "Store statistics", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "RiftVault REST API",
	Description:      "Upload, decode and browse League of Legends replay files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
