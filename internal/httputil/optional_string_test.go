package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStringTriState(t *testing.T) {
	var body struct {
		Absent OptionalString `json:"absent"`
		Null   OptionalString `json:"null"`
		Value  OptionalString `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"null": null, "value": "x"}`), &body))

	v, ok := body.Absent.Unpack()
	assert.False(t, ok)
	assert.Nil(t, v)

	v, ok = body.Null.Unpack()
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = body.Value.Unpack()
	assert.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, "x", *v)

	assert.Error(t, json.Unmarshal([]byte(`{"value": 3}`), &body))
}
