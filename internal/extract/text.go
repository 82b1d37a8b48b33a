// Package extract pulls checkable plain text out of HTML documents.
package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Text parses htmlContent and returns its visible text with whitespace
// collapsed, so offsets stay meaningful for checking.
func Text(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var b strings.Builder
	visibleText(doc, &b)
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// visibleText walks the node tree collecting text, skipping content that
// never renders.
func visibleText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "head", "template":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visibleText(c, b)
	}
}
