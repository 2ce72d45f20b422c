package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":       FormatJSON,
		"json":   FormatJSON,
		" JSON ": FormatJSON,
		"yaml":   FormatYAML,
		"yml":    FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestMarshal_JSONIndentsAndKeepsHTML(t *testing.T) {
	v := map[string]any{"html": "<p>a & b</p>"}

	data, err := Marshal(v, FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"html\": \"<p>a & b</p>\"\n}\n", string(data))
}

func TestMarshal_JSONRoundTrip(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"result":[{"selector":"h1","count":2}],"errors":[]}`), &v))

	data, err := Marshal(v, FormatJSON)
	require.NoError(t, err)

	var back any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestMarshal_YAML(t *testing.T) {
	v := map[string]any{"title": "Example", "links": []any{"https://a", "https://b"}}

	data, err := Marshal(v, FormatYAML)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(map[string]any{}, Format("toml"))
	require.Error(t, err)
}
