package tui

import (
	"testing"
)

func TestHighlight(t *testing.T) {
	text := "<!DOCTYPE html>\n<html lang=\"en\">\n\n<body></body>\n</html>\n"

	lines := highlight("index.html", text)
	if len(lines) != 5 {
		t.Fatalf("expected 5 highlighted lines, got %d", len(lines))
	}
	if len(lines[1]) < 2 {
		t.Errorf("expected several tokens on the html line, got %d", len(lines[1]))
	}
	if lines[1].plain() != `<html lang="en">` {
		t.Errorf("plain text mismatch: %q", lines[1].plain())
	}

	colored := false
	for _, tok := range lines[1] {
		if tok.color != "" {
			colored = true
		}
	}
	if !colored {
		t.Error("expected at least one coloured token")
	}
}

func TestHighlightStylesAndScripts(t *testing.T) {
	for name, text := range map[string]string{
		"styles.css": ".a {\n  width: 10px;\n}",
		"script.js":  "/* a\n b */\nvar x = 1;",
	} {
		lines := highlight(name, text)
		if len(lines) != 3 {
			t.Errorf("%s: expected 3 lines, got %d", name, len(lines))
		}
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	lines := highlight("unknown.xyz123", "some content\nmore content")

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].plain() != "some content" {
		t.Errorf("expected plain passthrough, got %q", lines[0].plain())
	}
}
