package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Dispatcher writes a Result to a file or to the console.
type Dispatcher struct {
	out      io.Writer
	errOut   io.Writer
	colorOut bool
	colorErr bool
	format   Format
	printer  *message.Printer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWriters sets the console writers. Payloads go to out, notices and
// warnings go to errOut.
func WithWriters(out, errOut io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = out
		d.errOut = errOut
	}
}

// WithColor enables ANSI colour on each writer.
func WithColor(out, errOut bool) Option {
	return func(d *Dispatcher) {
		d.colorOut = out
		d.colorErr = errOut
	}
}

// WithFormat sets the serialization of structured results.
func WithFormat(f Format) Option {
	return func(d *Dispatcher) {
		d.format = f
	}
}

// NewDispatcher returns a Dispatcher writing to stdout and stderr without
// colour and serializing structured values as JSON.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		out:     os.Stdout,
		errOut:  os.Stderr,
		format:  FormatJSON,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch persists res to target, or renders it on the console when
// target is empty. An existing file at target is overwritten. File write
// errors are returned as they are.
func (d *Dispatcher) Dispatch(res Result, target string) error {
	if target != "" {
		return d.save(res, target)
	}

	switch res.Kind {
	case KindBinary:
		msg := d.printer.Sprintf("Binary data received (%d bytes). Use --output to save it.", len(res.Bytes))
		_, err := fmt.Fprintln(d.errOut, paint(color.FgYellow, d.colorErr, msg))
		return err
	case KindText:
		text := res.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := io.WriteString(d.out, text)
		return err
	case KindStructured:
		data, err := Marshal(res.Value, d.format)
		if err != nil {
			return err
		}
		if d.colorOut && d.format == FormatJSON {
			data = pretty.Color(data, nil)
		}
		_, err = d.out.Write(data)
		return err
	default:
		return eris.Errorf("output: unknown result kind %d", int(res.Kind))
	}
}

func (d *Dispatcher) save(res Result, target string) error {
	var data []byte
	switch res.Kind {
	case KindBinary:
		data = res.Bytes
	case KindText:
		data = []byte(res.Text)
	case KindStructured:
		var err error
		if data, err = Marshal(res.Value, d.format); err != nil {
			return err
		}
	default:
		return eris.Errorf("output: unknown result kind %d", int(res.Kind))
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}

	zap.L().Debug("output: saved result",
		zap.String("path", target),
		zap.Stringer("kind", res.Kind),
		zap.Int("bytes", len(data)),
	)

	_, err := fmt.Fprintln(d.errOut, paint(color.FgGreen, d.colorErr, "Saved file to "+target))
	return err
}

// ColorEnabled reports whether w should receive ANSI colour: it must be a
// terminal, and neither noColor nor NO_COLOR may be set.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(attr color.Attribute, enabled bool, s string) string {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
