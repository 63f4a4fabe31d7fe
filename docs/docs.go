// Package docs registers the fasttextd OpenAPI document with swag.
// Regenerate with `swag init -g cmd/fasttextd/docs.go -o docs` after changing
// handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "fasttextd maintainers"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List models",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}}
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Manager status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
            }
        },
        "/models/{id}/load": {
            "post": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Load a model in the background",
                "parameters": [{"type": "string", "description": "Model id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/types.LoadResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/models/{id}": {
            "delete": {
                "tags": ["models"],
                "summary": "Drain and unload a model",
                "parameters": [{"type": "string", "description": "Model id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/v1/models/{id}/vocab": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dictionary"],
                "summary": "Page through the vocabulary",
                "parameters": [
                    {"type": "string", "description": "Model id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "First index", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.VocabResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/v1/models/{id}/words": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dictionary"],
                "summary": "Find the index of a word",
                "parameters": [
                    {"type": "string", "description": "Model id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Word to look up", "name": "word", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.WordLookupResponse"}}}
            }
        },
        "/v1/models/{id}/words/{index}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dictionary"],
                "summary": "Get the word stored at an index",
                "parameters": [
                    {"type": "string", "description": "Model id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Vocabulary index", "name": "index", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.WordLookupResponse"}}}
            }
        },
        "/v1/vectors/words": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vectors"],
                "summary": "Embed words",
                "parameters": [{"description": "Words", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.WordVectorsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.WordVectorsResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/v1/vectors/sentence": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vectors"],
                "summary": "Embed a text",
                "parameters": [{"description": "Text", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.SentenceVectorRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SentenceVectorResponse"}}}
            }
        },
        "/v1/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Predict labels with a supervised model",
                "parameters": [{"description": "Text and k", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PredictRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/v1/similarity": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vectors"],
                "summary": "Cosine similarity of two words or texts",
                "parameters": [{"description": "Pair to compare", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.SimilarityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SimilarityResponse"}}}
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid JSON body"}, "code": {"type": "integer", "example": 400}}
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "path": {"type": "string"},
                "vectors_path": {"type": "string"},
                "size_bytes": {"type": "integer"}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}}
        },
        "types.LoadResponse": {
            "type": "object",
            "properties": {"op_id": {"type": "string"}, "model": {"type": "string"}}
        },
        "types.WordLookupResponse": {
            "type": "object",
            "properties": {
                "model": {"type": "string"},
                "word": {"type": "string", "example": "златом"},
                "index": {"type": "integer", "example": 22},
                "found": {"type": "boolean"}
            }
        },
        "types.VocabResponse": {
            "type": "object",
            "properties": {
                "model": {"type": "string"},
                "count": {"type": "integer"},
                "dimension": {"type": "integer"},
                "offset": {"type": "integer"},
                "words": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.WordVectorsRequest": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "words": {"type": "array", "items": {"type": "string"}}}
        },
        "types.WordVector": {
            "type": "object",
            "properties": {
                "word": {"type": "string"},
                "found": {"type": "boolean"},
                "vector": {"type": "array", "items": {"type": "number"}}
            }
        },
        "types.WordVectorsResponse": {
            "type": "object",
            "properties": {
                "model": {"type": "string"},
                "dimension": {"type": "integer"},
                "vectors": {"type": "array", "items": {"$ref": "#/definitions/types.WordVector"}}
            }
        },
        "types.SentenceVectorRequest": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "text": {"type": "string"}}
        },
        "types.SentenceVectorResponse": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "found": {"type": "boolean"}, "vector": {"type": "array", "items": {"type": "number"}}}
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "text": {"type": "string"}, "k": {"type": "integer", "example": 3}}
        },
        "types.Prediction": {
            "type": "object",
            "properties": {"label": {"type": "string"}, "score": {"type": "number"}, "probability": {"type": "number"}}
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "predictions": {"type": "array", "items": {"$ref": "#/definitions/types.Prediction"}}}
        },
        "types.SimilarityRequest": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "a": {"type": "string"}, "b": {"type": "string"}, "mode": {"type": "string", "example": "word"}}
        },
        "types.SimilarityResponse": {
            "type": "object",
            "properties": {"model": {"type": "string"}, "similarity": {"type": "number"}, "found": {"type": "boolean"}}
        },
        "types.InstanceStatus": {
            "type": "object",
            "properties": {
                "model_id": {"type": "string"},
                "state": {"type": "string"},
                "last_used_unix": {"type": "integer"},
                "est_mb": {"type": "integer"},
                "dimension": {"type": "integer"},
                "vocab_size": {"type": "integer"},
                "has_vectors": {"type": "boolean"},
                "queue_len": {"type": "integer"},
                "inflight": {"type": "integer"},
                "max_queue_depth": {"type": "integer"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "instances": {"type": "array", "items": {"$ref": "#/definitions/types.InstanceStatus"}},
                "budget_mb": {"type": "integer"},
                "used_est_mb": {"type": "integer"},
                "margin_mb": {"type": "integer"},
                "last_error": {"type": "string"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"},
                "evictions_total": {"type": "integer"},
                "loads_total": {"type": "integer"},
                "state": {"type": "string"},
                "warmups_in_progress": {"type": "integer"},
                "draining_count": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "fasttextd API",
	Description:      "HTTP API over pre-trained fastText models: dictionary lookups, word and sentence vectors, label prediction.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
