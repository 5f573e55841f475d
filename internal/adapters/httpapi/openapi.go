package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/radioteca/internal/httpjson"
)

// handleOpenAPI renvoie une spec OpenAPI minimale pour cadrer l'API.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Radioteca API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
					},
					"required": []any{"error"},
				},
				"Program": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":           map[string]any{"type": "integer"},
						"name":         map[string]any{"type": "string"},
						"slug":         map[string]any{"type": "string"},
						"description":  map[string]any{"type": "string"},
						"imageUrl":     map[string]any{"type": "string"},
						"episodeCount": map[string]any{"type": "integer"},
					},
					"required": []any{"id", "name", "slug"},
				},
				"Episode": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":         map[string]any{"type": "integer"},
						"title":      map[string]any{"type": "string"},
						"content":    map[string]any{"type": "string"},
						"archiveUrl": map[string]any{"type": "string"},
						"images":     map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Image"}},
						"published":  map[string]any{"type": "string"},
						"duration":   map[string]any{"type": "string"},
						"programIds": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
					},
					"required": []any{"id", "title", "published"},
				},
				"Image": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"url":    map[string]any{"type": "string"},
						"width":  map[string]any{"type": "integer"},
						"height": map[string]any{"type": "integer"},
					},
					"required": []any{"url"},
				},
				"RemoteConfig": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"apiBaseUrl":   map[string]any{"type": "string"},
						"mediaBaseUrl": map[string]any{"type": "string"},
					},
					"required": []any{"apiBaseUrl"},
				},
				"EpisodePage": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"items":   map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Episode"}},
						"page":    map[string]any{"type": "integer"},
						"perPage": map[string]any{"type": "integer"},
						"hasMore": map[string]any{"type": "boolean"},
					},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/programs": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Program")}},
			},
			"/api/v1/programs/{id}": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Program")}},
			},
			"/api/v1/programs/{id}/episodes": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/EpisodePage")}},
			},
			"/api/v1/episodes": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/EpisodePage")}},
			},
			"/api/v1/episodes/{id}": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Episode")}},
			},
			"/api/v1/search": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Episode")}},
			},
			"/api/v1/config": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/RemoteConfig")}},
			},
			"/api/v1/config/refresh": map[string]any{
				"post": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/RemoteConfig")}},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
