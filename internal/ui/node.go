package ui

import (
	"strings"
	"sync"
)

// Rect is a node's position and size in screen pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Node is a single UI element: panel, row, label, button, input, select or image. It has optional
// classes and id for CSS matching, bounds, optional text, and children drawn after it.
// Nodes are mutated from action goroutines and read by the renderer, so fields are behind a mutex.
type Node struct {
	Type string // "panel", "row", "label", "button", "input", "select", "image"
	ID   string // e.g. "upload" for #upload

	mu       sync.RWMutex
	classes  []string
	text     string
	hidden   bool
	bounds   Rect
	children []*Node
}

// NewNode creates a node with type and optional class list (space separated), id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, ID: id, classes: strings.Fields(class), text: text}
}

func (n *Node) Text() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.text
}

func (n *Node) SetText(s string) {
	n.mu.Lock()
	n.text = s
	n.mu.Unlock()
}

// Classes returns a copy of the node's classes.
func (n *Node) Classes() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]string(nil), n.classes...)
}

func (n *Node) HasClass(c string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, have := range n.classes {
		if have == c {
			return true
		}
	}
	return false
}

func (n *Node) AddClass(c string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, have := range n.classes {
		if have == c {
			return
		}
	}
	n.classes = append(n.classes, c)
}

func (n *Node) RemoveClass(c string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.classes[:0]
	for _, have := range n.classes {
		if have != c {
			out = append(out, have)
		}
	}
	n.classes = out
}

func (n *Node) Hidden() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.hidden
}

func (n *Node) SetHidden(h bool) {
	n.mu.Lock()
	n.hidden = h
	n.mu.Unlock()
}

func (n *Node) Bounds() Rect {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.bounds
}

func (n *Node) SetBounds(r Rect) {
	n.mu.Lock()
	n.bounds = r
	n.mu.Unlock()
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.mu.Lock()
	n.children = append(n.children, children...)
	n.mu.Unlock()
	return n
}

func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]*Node(nil), n.children...)
}

// Walk calls fn for n and every descendant, depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first node in the tree with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.ID == id {
			found = c
		}
	})
	return found
}
