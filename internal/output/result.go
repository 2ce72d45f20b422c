// Package output presents render results on the console or persists them
// to a file.
package output

// Kind tags the shape of a Result.
type Kind int

// Result kinds.
const (
	KindBinary Kind = iota + 1
	KindText
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindText:
		return "text"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Result is the value returned by one remote call. Exactly one of Bytes,
// Text and Value is meaningful, selected by Kind.
type Result struct {
	Kind  Kind
	Bytes []byte
	Text  string
	Value any
}

// Binary wraps raw bytes such as a PNG or PDF.
func Binary(b []byte) Result {
	return Result{Kind: KindBinary, Bytes: b}
}

// Text wraps a textual payload such as HTML or Markdown.
func Text(s string) Result {
	return Result{Kind: KindText, Text: s}
}

// Structured wraps a decoded JSON value.
func Structured(v any) Result {
	return Result{Kind: KindStructured, Value: v}
}

// Classify tags an arbitrary value by its runtime shape: []byte is binary,
// string is text and everything else is structured.
func Classify(v any) Result {
	switch x := v.(type) {
	case Result:
		return x
	case []byte:
		return Binary(x)
	case string:
		return Text(x)
	default:
		return Structured(x)
	}
}
