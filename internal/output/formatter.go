// Package output writes command results as JSON or Markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	// FormatPlain prints the Markdown source without terminal styling.
	FormatPlain Format = "plain"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatPlain, "text":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write prints v as indented JSON, or the Markdown document md styled for
// the terminal. Styling is skipped when w is not a terminal.
func Write(w io.Writer, format Format, v any, md string) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatPlain:
		_, err := io.WriteString(w, md)
		return err
	default:
		if !isTerminal(w) {
			_, err := io.WriteString(w, md)
			return err
		}
		out, err := Render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
}

func Render(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
