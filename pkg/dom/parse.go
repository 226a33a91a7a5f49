package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds a Document from HTML source. Script bodies are collected
// into Document.Scripts in document order and left out of the tree.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	doc := NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		convert(doc, doc.Root, c)
	}
	return doc, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func convert(doc *Document, parent *Node, src *html.Node) {
	switch src.Type {
	case html.TextNode:
		if strings.TrimSpace(src.Data) != "" {
			parent.AppendText(src.Data)
		}
	case html.ElementNode:
		if src.DataAtom == atom.Script {
			var sb strings.Builder
			for c := src.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if s := strings.TrimSpace(sb.String()); s != "" {
				doc.Scripts = append(doc.Scripts, s)
			}
			return
		}
		n := &Node{
			Type:       ElementNode,
			TagName:    strings.ToLower(src.Data),
			Attributes: make(map[string]string, len(src.Attr)),
			Children:   make([]*Node, 0),
		}
		for _, a := range src.Attr {
			n.Attributes[a.Key] = a.Val
		}
		parent.AddChild(n)
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			convert(doc, n, c)
		}
	}
}
