// Package trace prints the debug trace shown with --madrun-debug: one
// `> key: value` line per resolved input, written to standard error.
package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Tracer writes trace lines. A nil Tracer writes nothing.
type Tracer struct {
	w     io.Writer
	arrow *color.Color
	key   *color.Color
}

// New returns a Tracer writing to w.
func New(w io.Writer) *Tracer {
	return &Tracer{
		w:     w,
		arrow: color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan, color.Bold),
	}
}

// Line writes key and value. Strings are written as is; everything else is
// rendered as JSON.
func (t *Tracer) Line(key string, value any) {
	if t == nil {
		return
	}
	fmt.Fprintf(t.w, "%s %s %s\n", t.arrow.Sprint(">"), t.key.Sprint(key+":"), render(value))
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
