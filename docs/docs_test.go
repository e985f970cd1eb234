package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc_Paths(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for path, method := range map[string]string{
		"/auth/login":                                  "post",
		"/pharmacies/{pharmacy_id}/sales":              "post",
		"/pharmacies/{pharmacy_id}/leaves/{id}/review": "post",
		"/shop/carts/{token}/checkout":                 "post",
		"/tasks/{name}/run":                            "post",
	} {
		ops, found := doc.Paths[path]
		if assert.True(t, found, path) {
			assert.Contains(t, ops, method, path)
		}
	}
	assert.Contains(t, doc.Definitions, "dto.LoginResponse")
	assert.Contains(t, doc.Definitions, "dto.PageResult-model_Product")
}
