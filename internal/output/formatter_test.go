package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatMarkdown, "md": FormatMarkdown, "JSON": FormatJSON, "text": FormatPlain}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected error for yaml")
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, map[string]int{"count": 2}, "# ignored"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Fatalf("out=%q", buf.String())
	}
}

func TestWrite_MarkdownToPipeIsPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, nil, "# Summary\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "# Summary\n" {
		t.Fatalf("out=%q", buf.String())
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Summary\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Summary") {
		t.Fatalf("out=%q", out)
	}
}
