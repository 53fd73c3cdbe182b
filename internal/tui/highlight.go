package tui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// token is a syntax-highlighted chunk of one source line.
type token struct {
	text  string
	color string // hex colour, empty for default
}

// highlightedLine is one source line split into coloured tokens.
type highlightedLine []token

func (hl highlightedLine) plain() string {
	var b strings.Builder
	for _, t := range hl {
		b.WriteString(t.text)
	}
	return b.String()
}

// highlight splits text into lines and colours them with the lexer chosen
// from the file name. Unknown file types come back uncoloured.
func highlight(name, text string) []highlightedLine {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	lexer := lexerFor(name)
	if lexer == nil {
		return plainLines(lines)
	}
	iterator, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return plainLines(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	out := make([]highlightedLine, 0, len(lines))
	var current highlightedLine
	for _, tok := range iterator.Tokens() {
		// Tokens such as comments may span lines.
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				out = append(out, current)
				current = nil
			}
			if part != "" {
				current = append(current, token{text: part, color: colorOf(style, tok.Type)})
			}
		}
	}
	out = append(out, current)

	for len(out) < len(lines) {
		out = append(out, nil)
	}
	return out[:len(lines)]
}

func plainLines(lines []string) []highlightedLine {
	out := make([]highlightedLine, len(lines))
	for i, line := range lines {
		out[i] = highlightedLine{{text: line}}
	}
	return out
}

func lexerFor(name string) chroma.Lexer {
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		if ext := filepath.Ext(name); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func colorOf(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
