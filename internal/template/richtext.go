package template

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"resume-builder/internal/domain"
)

// The summary and description fields hold formatted-text blobs produced by a
// rich-text editor. Only paragraphs, bold, italic and ordered/unordered
// lists survive rendering; everything else is stripped, never an error.

var richTextPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "b", "strong", "i", "em", "ol", "ul", "li", "br")
	return p
}()

// ParseRichText converts a formatted-text blob into restricted rich nodes.
// Blank input yields nil.
func ParseRichText(src string) []domain.RichNode {
	if strings.TrimSpace(src) == "" {
		return nil
	}

	sanitized := richTextPolicy.Sanitize(src)
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(sanitized), body)
	if err != nil {
		// Sanitized input that still refuses to parse renders as plain text.
		return []domain.RichNode{{
			Kind: domain.RichParagraph,
			Children: []domain.RichNode{
				{Kind: domain.RichText, Text: textOnly(src)},
			},
		}}
	}

	var out []domain.RichNode
	for _, n := range nodes {
		out = append(out, convertNodes(n)...)
	}
	return out
}

func convertNodes(n *html.Node) []domain.RichNode {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []domain.RichNode{{Kind: domain.RichText, Text: n.Data}}
	case html.ElementNode:
		switch n.DataAtom {
		case atom.P:
			return []domain.RichNode{{Kind: domain.RichParagraph, Children: convertChildren(n)}}
		case atom.B, atom.Strong:
			return []domain.RichNode{{Kind: domain.RichBold, Children: convertChildren(n)}}
		case atom.I, atom.Em:
			return []domain.RichNode{{Kind: domain.RichItalic, Children: convertChildren(n)}}
		case atom.Ol:
			return []domain.RichNode{{Kind: domain.RichOrderedList, Children: listItems(n)}}
		case atom.Ul:
			return []domain.RichNode{{Kind: domain.RichBulletList, Children: listItems(n)}}
		case atom.Li:
			return []domain.RichNode{{Kind: domain.RichListItem, Children: convertChildren(n)}}
		case atom.Br:
			return []domain.RichNode{{Kind: domain.RichText, Text: "\n"}}
		}
		// Unknown wrapper: keep its content, drop the tag.
		return convertChildren(n)
	}
	return nil
}

func convertChildren(n *html.Node) []domain.RichNode {
	var out []domain.RichNode
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, convertNodes(c)...)
	}
	return out
}

// listItems keeps only li children so a list node never carries loose text.
func listItems(n *html.Node) []domain.RichNode {
	var out []domain.RichNode
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Li {
			out = append(out, domain.RichNode{Kind: domain.RichListItem, Children: convertChildren(c)})
		}
	}
	return out
}

// PlainText flattens rich nodes to their text content, used for emptiness
// checks and plain previews.
func PlainText(nodes []domain.RichNode) string {
	var b strings.Builder
	var walk func([]domain.RichNode)
	walk = func(ns []domain.RichNode) {
		for _, n := range ns {
			if n.Kind == domain.RichText {
				b.WriteString(n.Text)
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return b.String()
}

func textOnly(src string) string {
	return bluemonday.StrictPolicy().Sanitize(src)
}
