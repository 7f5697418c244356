// Package cfrxml parses CFR title XML and resolves ancestry paths to the
// exact subtree they address. It is pure: no I/O, no concurrency.
package cfrxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
)

// Node is one element of a parsed title document. CFR structure elements
// (DIV1..DIV9) carry a TYPE tag and an N identifier attribute.
type Node struct {
	Name       string // element local name, e.g. "DIV3" or "P"
	Type       string // TYPE attribute, e.g. "CHAPTER"
	Identifier string // N attribute, e.g. "I"

	content []segment
}

// segment preserves document order between character data and child elements.
type segment struct {
	text  string
	child *Node
}

// Children returns the node's child elements in document order.
func (n *Node) Children() []*Node {
	var children []*Node
	for _, s := range n.content {
		if s.child != nil {
			children = append(children, s.child)
		}
	}
	return children
}

// Text returns the node's flattened character data in document order,
// including all descendants.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, s := range n.content {
		if s.child != nil {
			s.child.writeText(b)
		} else {
			b.WriteString(s.text)
		}
	}
}

// Document is a parsed CFR title XML document.
type Document struct {
	root *Node
}

// Root returns the document's synthetic root node. Its children are the
// document's top-level elements.
func (d *Document) Root() *Node {
	return d.root
}

// Parse reads a CFR title XML document into a navigable tree.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	root := &Node{}
	stack := []*Node{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse title XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, attr := range t.Attr {
				switch attr.Name.Local {
				case "TYPE":
					node.Type = attr.Value
				case "N":
					node.Identifier = attr.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.content = append(parent.content, segment{child: node})
			stack = append(stack, node)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			current := stack[len(stack)-1]
			current.content = append(current.content, segment{text: string(t)})
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("failed to parse title XML: unclosed element")
	}

	return &Document{root: root}, nil
}

// ParseString parses a title document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// findDescendant searches n's descendants in document order for an element
// matching the given name, TYPE tag, and N identifier. The search never
// leaves n's subtree; sibling subtrees are invisible.
func findDescendant(n *Node, name, divType, identifier string) *Node {
	for _, s := range n.content {
		if s.child == nil {
			continue
		}
		if s.child.Name == name && s.child.Type == divType && s.child.Identifier == identifier {
			return s.child
		}
		if found := findDescendant(s.child, name, divType, identifier); found != nil {
			return found
		}
	}
	return nil
}

// levelElements maps each hierarchy level to its XML element and TYPE tag.
// DIV6 (subject groups) and DIV7 (subparts) are not addressed by ancestry
// resolution.
var levelElements = map[domain.LevelType]struct {
	name    string
	divType string
}{
	domain.LevelTitle:      {"DIV1", "TITLE"},
	domain.LevelSubtitle:   {"DIV2", "SUBTITLE"},
	domain.LevelChapter:    {"DIV3", "CHAPTER"},
	domain.LevelSubchapter: {"DIV4", "SUBCHAP"},
	domain.LevelPart:       {"DIV5", "PART"},
	domain.LevelSection:    {"DIV8", "SECTION"},
}

// Resolve descends the document level by level following the ancestry path
// and returns the subtree at the path's deepest specified level. Levels
// absent from the path are transparent: the current scope carries forward.
// Each search is scoped to descendants of the current scope only, so a
// colliding identifier in a sibling subtree cannot be matched.
func Resolve(doc *Document, path domain.AncestryPath) (*Node, error) {
	scope := doc.root
	for _, level := range domain.Levels {
		identifier, ok := path.Identifier(level)
		if !ok {
			continue
		}
		elem := levelElements[level]
		next := findDescendant(scope, elem.name, elem.divType, identifier)
		if next == nil {
			return nil, &domain.ResolutionError{Level: level, Identifier: identifier}
		}
		scope = next
	}
	return scope, nil
}
