package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		BasePath string                     `json:"basePath"`
		Info     map[string]any             `json:"info"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed), "Rendered document should be valid JSON")

	assert.Equal(t, "/api/v1", parsed.BasePath)
	assert.Equal(t, "Brain memory graph API", parsed.Info["title"])
	for _, path := range []string{"/graph", "/entities", "/relations", "/lock", "/health"} {
		assert.Contains(t, parsed.Paths, path)
	}
}
