package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// Format selects how structured values are serialized.
type Format string

// Supported structured formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a config or flag value to a Format. An empty string
// selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("output: unsupported format %q (want json or yaml)", s)
	}
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Marshal serializes v in the given format. JSON output is indented with
// two spaces and leaves HTML characters unescaped.
func Marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, eris.Wrap(err, "output: marshal yaml")
		}
		return data, nil
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, eris.Wrap(err, "output: marshal json")
		}
		return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
	default:
		return nil, eris.Errorf("output: unsupported format %q", string(f))
	}
}
