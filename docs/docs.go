package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Chamados Dashboard API",
    "description": "Upload support ticket exports and get the dashboard analysis",
    "version": "1.0"
  },
  "basePath": "/",
  "securityDefinitions": {
    "ApiKey": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
  },
  "paths": {
    "/healthz": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
    "/api/sample.csv": {"get": {"tags": ["dataset"], "summary": "Download the sample dataset", "produces": ["text/csv"], "responses": {"200": {"description": "CSV file"}}}},
    "/api/sample": {"post": {"tags": ["dataset"], "summary": "Load the sample dataset", "responses": {"200": {"description": "Dataset view"}}}},
    "/api/upload": {"post": {
      "tags": ["dataset"], "summary": "Upload tickets", "consumes": ["multipart/form-data"],
      "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}],
      "responses": {"200": {"description": "Dataset view"}, "400": {"description": "Invalid request"}, "413": {"description": "File too large"}, "415": {"description": "Unsupported format"}, "422": {"description": "Parse error"}}
    }},
    "/api/analysis": {"get": {"tags": ["dataset"], "summary": "Current analysis", "responses": {"200": {"description": "Dataset view"}, "404": {"description": "No data"}}}},
    "/api/tickets": {"get": {
      "tags": ["dataset"], "summary": "Processed tickets",
      "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"name": "offset", "in": "query", "type": "integer"}],
      "responses": {"200": {"description": "Ticket page"}, "400": {"description": "Invalid request"}, "404": {"description": "No data"}}
    }},
    "/api/highlights": {"get": {"tags": ["dataset"], "summary": "Dashboard highlights", "responses": {"200": {"description": "Highlights"}, "404": {"description": "No data"}}}},
    "/api/session": {"delete": {"tags": ["dataset"], "summary": "Clear the current dataset", "responses": {"204": {"description": "Cleared"}}}},
    "/api/insights": {"post": {
      "tags": ["insights"], "summary": "Generate an AI report", "security": [{"ApiKey": []}],
      "parameters": [{"name": "request", "in": "body", "schema": {"type": "object", "properties": {"mode": {"type": "string", "enum": ["summary", "tickets"]}, "limit": {"type": "integer", "minimum": 1, "maximum": 200}}}}],
      "responses": {"200": {"description": "Insight"}, "400": {"description": "Validation error"}, "401": {"description": "Unauthorized"}, "404": {"description": "No data"}, "429": {"description": "Rate limited"}, "502": {"description": "AI error"}, "503": {"description": "AI unavailable"}}
    }}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
