package openapi

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	URL string `json:"url" yaml:"url"`
}

type document struct {
	OpenAPI string                    `json:"openapi" yaml:"openapi"`
	Servers []server                  `json:"servers" yaml:"servers"`
	Paths   map[string]map[string]any `json:"paths" yaml:"paths"`
}

func TestSpecJSON_MatchesYAML(t *testing.T) {
	raw, err := SpecJSON()
	require.NoError(t, err)

	var fromJSON, fromYAML document
	require.NoError(t, json.Unmarshal(raw, &fromJSON))
	require.NoError(t, yaml.Unmarshal(SpecYAML, &fromYAML))

	assert.Equal(t, "3.0.3", fromJSON.OpenAPI)
	assert.Equal(t, fromYAML.OpenAPI, fromJSON.OpenAPI)
	assert.Len(t, fromJSON.Paths, len(fromYAML.Paths))
	for path := range fromYAML.Paths {
		if _, ok := fromJSON.Paths[path]; !ok {
			t.Errorf("JSON form lacks %s", path)
		}
	}

	again, err := SpecJSON()
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestSpec_DocumentsEveryRoute(t *testing.T) {
	var doc document
	require.NoError(t, yaml.Unmarshal(SpecYAML, &doc))
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "/api/v1", doc.Servers[0].URL)

	routes := map[string]string{
		"/health":                           "get",
		"/ready":                            "get",
		"/forms":                            "get",
		"/forms/categories":                 "get",
		"/forms/{id}":                       "get",
		"/ships":                            "get",
		"/ships/categories":                 "get",
		"/ships/{id}":                       "get",
		"/ports":                            "get",
		"/ports/{slug}":                     "get",
		"/ports/{slug}/spots":               "get",
		"/ports/{slug}/spots/categories":    "get",
		"/ports/{slug}/markers":             "get",
		"/ports/{slug}/markers/{id}/select": "post",
		"/ports/{slug}/conditions":          "get",
		"/updates/ws":                       "get",
		"/updates/stream":                   "get",
		"/openapi.json":                     "get",
		"/openapi.yaml":                     "get",
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, method := range routes {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Errorf("missing path %s", path)
			continue
		}
		assert.Contains(t, ops, method, path)
	}
}
