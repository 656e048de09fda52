// Package dom converts resolved descriptor trees into HTML documents.
package dom

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"sierpinski/internal/vdom"
)

// Build converts a resolved node into an HTML node. Widget nodes, which only
// appear in unresolved trees, yield nil.
func Build(n vdom.Node) *html.Node {
	switch n := n.(type) {
	case vdom.Text:
		return &html.Node{Type: html.TextNode, Data: string(n)}
	case *vdom.Element:
		el := element(n.Tag)
		if len(n.Classes) > 0 {
			el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: strings.Join(n.Classes, " ")})
		}
		if style := inlineStyle(n); style != "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: style})
		}
		for _, c := range n.Children {
			if child := Build(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	}
	return nil
}

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func inlineStyle(e *vdom.Element) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(e.Styles)) {
		parts = append(parts, strcase.ToKebab(k)+": "+e.Styles[k])
	}
	if e.Transform != nil {
		parts = append(parts, "transform: "+e.Transform.String())
	}
	return strings.Join(parts, "; ")
}

// Stylesheet supplies the CSS embedded in exported documents.
type Stylesheet interface {
	Stylesheet() string
}

// Render writes a complete HTML document holding root.
func Render(w io.Writer, root vdom.Node, css Stylesheet, title string) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element("html")
	doc.AppendChild(htmlEl)

	head := element("head")
	meta := element("meta")
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	titleEl := element("title")
	titleEl.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(titleEl)
	if css != nil {
		style := element("style")
		style.AppendChild(&html.Node{Type: html.TextNode, Data: css.Stylesheet()})
		head.AppendChild(style)
	}
	htmlEl.AppendChild(head)

	body := element("body")
	if n := Build(root); n != nil {
		body.AppendChild(n)
	}
	htmlEl.AppendChild(body)

	return html.Render(w, doc)
}
