// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed citation document. Children holds
// sub-elements in document order; Text is the trimmed character data
// directly under the element. Navigation methods are nil-safe so lookup
// chains degrade to "not found" instead of panicking.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// ParseTree decodes an XML document into a Node tree. The synthetic root
// holds the document's top-level element as its only child. A document
// that is not well-formed XML, or contains no element at all, is an error.
func ParseTree(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &Node{Name: "#document"}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			stack[len(stack)-1].Text += string(t)
		}
	}

	if len(root.Children) == 0 {
		return nil, fmt.Errorf("malformed document: no root element")
	}
	return root, nil
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildList returns every child element with the given name, normalizing a
// single occurrence to a one-element list.
func (n *Node) ChildList(name string) []*Node {
	if n == nil {
		return nil
	}
	var kids []*Node
	for _, c := range n.Children {
		if c.Name == name {
			kids = append(kids, c)
		}
	}
	return kids
}

// Value returns the node's text, or "" for a nil node.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.Text
}

// Outline renders the tree as an indented element outline. Used by the
// verbose diagnostics facility in place of dumping raw XML.
func (n *Node) Outline() string {
	var b strings.Builder
	n.outline(&b, 0)
	return b.String()
}

func (n *Node) outline(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Name)
	if n.Text != "" {
		b.WriteString(": ")
		b.WriteString(n.Text)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		c.outline(b, depth+1)
	}
}
