package workspace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadline/internal/domain"
)

func TestContentAppend(t *testing.T) {
	text := TextContent("Hel")
	text.Append("lo")
	assert.Equal(t, "Hello", text.Text)
	assert.Equal(t, "Hello", text.String())

	structured := StructuredContent("a", json.RawMessage(`{"k":1}`))
	structured.Append("b")
	assert.Equal(t, "ab", structured.Source)
	assert.Empty(t, structured.Text)
	assert.JSONEq(t, `{"k":1}`, string(structured.Data))

	var empty Content
	empty.Append("x")
	assert.Equal(t, ContentKindText, empty.Kind)
	assert.Equal(t, "x", empty.Text)
}

func TestContentValueAndScan(t *testing.T) {
	original := StructuredContent("src", json.RawMessage(`{"n":2}`))

	v, err := original.Value()
	require.NoError(t, err)

	var decoded Content
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, original.Kind, decoded.Kind)
	assert.Equal(t, original.Source, decoded.Source)
	assert.JSONEq(t, string(original.Data), string(decoded.Data))

	var fromBytes Content
	require.NoError(t, fromBytes.Scan([]byte(`{"kind":"text","text":"hi"}`)))
	assert.Equal(t, "hi", fromBytes.Text)

	_, err = Content{Kind: "video"}.Value()
	assert.Error(t, err)
}

func TestContentScanFailures(t *testing.T) {
	for name, src := range map[string]interface{}{
		"bad json":     "{nope",
		"unknown kind": `{"kind":"video"}`,
		"null":         nil,
		"wrong type":   42,
	} {
		t.Run(name, func(t *testing.T) {
			var c Content
			err := c.Scan(src)
			assert.ErrorIs(t, err, domain.ErrPayloadDecode)
		})
	}
}
