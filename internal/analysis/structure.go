package analysis

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoStructure is returned by a StructureParser that cannot parse markup.
var ErrNoStructure = errors.New("structured markup parse unavailable")

// Element is a markup element and its attributes.
type Element struct {
	Tag   string
	Attrs map[string]string
}

// Has reports whether the element carries attr with a non-empty value.
// srcset="" counts as missing.
func (e Element) Has(attr string) bool {
	return strings.TrimSpace(e.Attrs[attr]) != ""
}

// StructureParser extracts the elements of a markup document in document
// order. The markup analyzer runs its structural rules only when a parse
// succeeds.
type StructureParser interface {
	Parse(text string) ([]Element, error)
}

var (
	// HTMLStructure parses markup with an HTML5-conformant tokenizer.
	HTMLStructure StructureParser = htmlStructure{}
	// NoStructure disables the structural markup rules.
	NoStructure StructureParser = noStructure{}
)

type htmlStructure struct{}

func (htmlStructure) Parse(text string) ([]Element, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	var elements []Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := Element{Tag: n.Data, Attrs: make(map[string]string, len(n.Attr))}
			for _, attr := range n.Attr {
				el.Attrs[attr.Key] = attr.Val
			}
			elements = append(elements, el)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return elements, nil
}

type noStructure struct{}

func (noStructure) Parse(string) ([]Element, error) {
	return nil, ErrNoStructure
}
