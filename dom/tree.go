// Package dom holds a read-only, index addressed copy of a parsed HTML
// document. Nodes live in a single slice and refer to their children by
// NodeID, so lookups never panic: every accessor reports whether the node it
// was asked for exists and has the expected shape.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

type NodeID int

// Root is the id of the document node of every Tree.
const Root NodeID = 0

type NodeType uint8

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	OtherNode
)

type Attribute struct {
	Key string
	Val string
}

type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attribute
	Text     string
	Children []NodeID
}

type Tree struct {
	nodes []Node
}

// Parse parses an HTML document into a Tree.
func Parse(r io.Reader) (*Tree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return FromNode(root), nil
}

// FromNode copies the subtree rooted at n. Comments and doctypes are kept as
// OtherNode so child positions match the source document.
func FromNode(n *html.Node) *Tree {
	t := &Tree{}
	t.add(n)
	return t
}

func (t *Tree) add(n *html.Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{})

	node := Node{}
	switch n.Type {
	case html.DocumentNode:
		node.Type = DocumentNode
	case html.ElementNode:
		node.Type = ElementNode
		node.Tag = n.Data
		for _, a := range n.Attr {
			node.Attrs = append(node.Attrs, Attribute{Key: a.Key, Val: a.Val})
		}
	case html.TextNode:
		node.Type = TextNode
		node.Text = n.Data
	default:
		node.Type = OtherNode
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.Children = append(node.Children, t.add(c))
	}
	t.nodes[id] = node
	return id
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Children returns all children of id, text nodes included.
func (t *Tree) Children(id NodeID) []NodeID {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	return n.Children
}

// Child returns the i-th child of id, text nodes included.
func (t *Tree) Child(id NodeID, i int) (NodeID, bool) {
	children := t.Children(id)
	if i < 0 || i >= len(children) {
		return 0, false
	}
	return children[i], true
}

// ElementChildren returns the children of id that are elements.
func (t *Tree) ElementChildren(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.IsElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// ElementChild returns the i-th element child of id.
func (t *Tree) ElementChild(id NodeID, i int) (NodeID, bool) {
	elements := t.ElementChildren(id)
	if i < 0 || i >= len(elements) {
		return 0, false
	}
	return elements[i], true
}

func (t *Tree) IsElement(id NodeID) bool {
	n, ok := t.Node(id)
	return ok && n.Type == ElementNode
}

// Tag returns the tag name of an element, or "" for any other node.
func (t *Tree) Tag(id NodeID) string {
	n, ok := t.Node(id)
	if !ok || n.Type != ElementNode {
		return ""
	}
	return n.Tag
}

// Attr returns the value of the attribute key. The last occurrence wins.
func (t *Tree) Attr(id NodeID, key string) (string, bool) {
	n, ok := t.Node(id)
	if !ok || n.Type != ElementNode {
		return "", false
	}
	val, found := "", false
	for _, a := range n.Attrs {
		if a.Key == key {
			val, found = a.Val, true
		}
	}
	return val, found
}

func (t *Tree) HasAttr(id NodeID, key string) bool {
	_, ok := t.Attr(id, key)
	return ok
}

// HasClass reports whether class is one of the tokens of the class attribute.
func (t *Tree) HasClass(id NodeID, class string) bool {
	classes, ok := t.Attr(id, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the content of a text node.
func (t *Tree) Text(id NodeID) (string, bool) {
	n, ok := t.Node(id)
	if !ok || n.Type != TextNode {
		return "", false
	}
	return n.Text, true
}

// FirstText returns the content of the first child of id when that child is
// a text node.
func (t *Tree) FirstText(id NodeID) (string, bool) {
	c, ok := t.Child(id, 0)
	if !ok {
		return "", false
	}
	return t.Text(c)
}

// FindChild returns the first child of id satisfying match.
func (t *Tree) FindChild(id NodeID, match func(NodeID) bool) (NodeID, bool) {
	for _, c := range t.Children(id) {
		if match(c) {
			return c, true
		}
	}
	return 0, false
}

// FindChildElement returns the first child element of id with the given tag.
func (t *Tree) FindChildElement(id NodeID, tag string) (NodeID, bool) {
	return t.FindChild(id, func(c NodeID) bool {
		return t.Tag(c) == tag
	})
}

// FindDescendant walks the subtree below id breadth first and returns the
// shallowest node satisfying match.
func (t *Tree) FindDescendant(id NodeID, match func(NodeID) bool) (NodeID, bool) {
	queue := append([]NodeID(nil), t.Children(id)...)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if match(c) {
			return c, true
		}
		queue = append(queue, t.Children(c)...)
	}
	return 0, false
}
