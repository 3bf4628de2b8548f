//Renderer backed by golang.org/x/net/html nodes

// Package htmldom is an i18n.Renderer that builds a golang.org/x/net/html tree
package htmldom

import (
	"strings"

	"github.com/dakusan/i18nops/i18n"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer creates nodes under a detached <body> element
type Renderer struct {
	body *html.Node
}

// New creates a renderer with an empty <body> root
func New() *Renderer {
	return &Renderer{&html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}}
}

// Body returns the root element
func (r *Renderer) Body() *html.Node {
	return r.body
}

// HTML returns the rendered children of a node (its inner HTML)
func (r *Renderer) HTML(node i18n.NativeNode) string {
	n, ok := node.(*html.Node)
	if !ok || n == nil {
		return ""
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (r *Renderer) CreateText(value string) i18n.NativeNode {
	return &html.Node{Type: html.TextNode, Data: value}
}

func (r *Renderer) CreateElement(tag string) i18n.NativeNode {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func (r *Renderer) CreateComment(value string) i18n.NativeNode {
	return &html.Node{Type: html.CommentNode, Data: value}
}

func (r *Renderer) AppendChild(parent, child i18n.NativeNode) {
	c := detach(child)
	parent.(*html.Node).AppendChild(c)
}

func (r *Renderer) InsertBefore(parent, child, ref i18n.NativeNode) {
	//The reference may be the child itself when it is already in place
	c, refNode := child.(*html.Node), ref.(*html.Node)
	if c == refNode {
		return
	}
	detach(c)
	parent.(*html.Node).InsertBefore(c, refNode)
}

func (r *Renderer) Remove(node i18n.NativeNode) {
	detach(node)
}

func (r *Renderer) Parent(node i18n.NativeNode) i18n.NativeNode {
	if p := node.(*html.Node).Parent; p != nil {
		return p
	}
	return nil
}

func (r *Renderer) SetAttribute(node i18n.NativeNode, name, value string) {
	n := node.(*html.Node)
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func (r *Renderer) SetText(node i18n.NativeNode, value string) {
	node.(*html.Node).Data = value
}

func detach(node i18n.NativeNode) *html.Node {
	n := node.(*html.Node)
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}
