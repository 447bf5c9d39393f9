package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/whiteslip-api/docs"
)

func TestSwagger_RegistradoYValido(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.JSONEq(t, string(docs.JSON()), raw)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(docs.JSON(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, p := range []string{"/api/v1/auth", "/api/v1/menu", "/api/v1/orders/bulk", "/api/v1/reports/csv", "/api/v1/users/{id}"} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/api/v1/menu"], "post")
}
