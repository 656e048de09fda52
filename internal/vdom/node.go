// Package vdom is a small retained widget tree: widgets describe their output
// as element descriptors, and a Tree reconciles those descriptors against the
// instances it kept from the previous pass.
package vdom

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is an entry in a descriptor tree: *Element, Text or *WNode.
type Node interface {
	node()
}

// Text is a text leaf.
type Text string

func (Text) node() {}

// Styles holds inline styles keyed by camelCase property name.
type Styles map[string]string

// Px reads a pixel value such as "32.5px".
func (s Styles) Px(name string) (float64, bool) {
	v, ok := s[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Px formats v as a CSS pixel length.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Transform is a scale/translate transform applied to an element and its
// descendants around the element origin.
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateZ float64
}

func (t Transform) String() string {
	return fmt.Sprintf("scaleX(%s) scaleY(%s) translateZ(%s)",
		strconv.FormatFloat(t.ScaleX, 'f', -1, 64),
		strconv.FormatFloat(t.ScaleY, 'f', -1, 64),
		Px(t.TranslateZ))
}

// Props configures an Element built with V.
type Props struct {
	Key          string
	Classes      []string
	Styles       Styles
	Transform    *Transform
	OnMouseEnter func()
	OnMouseLeave func()
}

// Element is a tagged visual element.
type Element struct {
	Tag          string
	Key          string
	Classes      []string
	Styles       Styles
	Transform    *Transform
	OnMouseEnter func()
	OnMouseLeave func()
	Children     []Node
}

func (*Element) node() {}

// V builds an element descriptor.
func V(tag string, p Props, children ...Node) *Element {
	return &Element{
		Tag:          tag,
		Key:          p.Key,
		Classes:      p.Classes,
		Styles:       p.Styles,
		Transform:    p.Transform,
		OnMouseEnter: p.OnMouseEnter,
		OnMouseLeave: p.OnMouseLeave,
		Children:     children,
	}
}

// HasClass reports whether c is one of the element's classes.
func (e *Element) HasClass(c string) bool {
	for _, x := range e.Classes {
		if x == c {
			return true
		}
	}
	return false
}

// TextContent concatenates the text leaves directly under e.
func (e *Element) TextContent() string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// WNode places a widget in a descriptor tree.
type WNode struct {
	Key      string
	Widget   Widget
	Children []Node
}

func (*WNode) node() {}

// W composes a widget with optional content.
func W(w Widget, children ...Node) *WNode {
	return &WNode{Widget: w, Children: children}
}

// Keyed sets the key used to match this widget across passes.
func (n *WNode) Keyed(key string) *WNode {
	n.Key = key
	return n
}

// Walk visits every node of a resolved tree depth first, passing the child
// index path of each node.
func Walk(n Node, fn func(path []int, n Node)) {
	walk(n, nil, fn)
}

func walk(n Node, path []int, fn func([]int, Node)) {
	fn(path, n)
	var children []Node
	switch n := n.(type) {
	case *Element:
		children = n.Children
	case *WNode:
		children = n.Children
	}
	for i, c := range children {
		walk(c, append(path[:len(path):len(path)], i), fn)
	}
}
