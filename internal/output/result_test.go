package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"bytes", []byte{0x89, 'P', 'N', 'G'}, KindBinary},
		{"empty bytes", []byte{}, KindBinary},
		{"string", "<html></html>", KindText},
		{"empty string", "", KindText},
		{"map", map[string]any{"a": 1.0}, KindStructured},
		{"slice", []any{"x"}, KindStructured},
		{"number", 42.0, KindStructured},
		{"nil", nil, KindStructured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in).Kind)
		})
	}
}

func TestClassify_ResultPassesThrough(t *testing.T) {
	r := Text("hello")
	assert.Equal(t, r, Classify(r))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, Result{Kind: KindBinary, Bytes: []byte("b")}, Binary([]byte("b")))
	assert.Equal(t, Result{Kind: KindText, Text: "s"}, Text("s"))
	assert.Equal(t, Result{Kind: KindStructured, Value: 1.0}, Structured(1.0))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "binary", KindBinary.String())
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "structured", KindStructured.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
