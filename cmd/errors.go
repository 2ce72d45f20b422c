package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"

	"github.com/sells-group/browser-render-cli/pkg/cloudflare"
)

// reportError prints err for the user: one line by default, the full eris
// trace plus every link of the error chain in debug mode.
func reportError(w io.Writer, err error, debug, useColor bool) {
	if debug {
		fmt.Fprintln(w, eris.ToString(err, true))
		writeErrorChain(w, err)
		return
	}

	label := color.New(color.FgRed, color.Bold)
	if useColor {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	fmt.Fprintf(w, "%s %v\n", label.Sprint("Error:"), err)
}

// writeErrorChain lists the concrete type and fields of each non-eris error
// in the chain. Errors returned by the API client and the filesystem carry
// no trace of their own.
func writeErrorChain(w io.Writer, err error) {
	fmt.Fprintln(w, "error chain:")
	for e := err; e != nil; e = errors.Unwrap(e) {
		typ := fmt.Sprintf("%T", e)
		if strings.HasPrefix(typ, "*eris.") {
			continue
		}
		fmt.Fprintf(w, "  %s: %v\n", typ, e)
		switch x := e.(type) {
		case *cloudflare.APIError:
			fmt.Fprintf(w, "    endpoint=%s status=%d\n", x.Endpoint, x.StatusCode)
			for _, d := range x.Errors {
				fmt.Fprintf(w, "    api error code=%d message=%q\n", d.Code, d.Message)
			}
			if x.Body != "" {
				fmt.Fprintf(w, "    body=%q\n", x.Body)
			}
		case *fs.PathError:
			fmt.Fprintf(w, "    op=%s path=%s\n", x.Op, x.Path)
		}
	}
}
