package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	SwaggerInfo.Host = "docs.example.com"
	SwaggerInfo.Schemes = []string{"https"}

	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Host    string                    `json:"host"`
		Schemes []string                  `json:"schemes"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "docs.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
	assert.Contains(t, doc.Paths["/documents/{id}"], "put")
	assert.Contains(t, doc.Paths["/courses/{course_id}/documents"], "post")
}
