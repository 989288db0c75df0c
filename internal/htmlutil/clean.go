// Package htmlutil cleans rendered/fetched HTML into plain text, adapted
// nearly verbatim from the teacher's internal/keywordextractor.CleanHTMLToText
// (same node-walk skip/space-element lists) for the Extractor's fallback
// text view.
package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true,
	"title": true, "nav": true, "footer": true, "aside": true,
}

var spaceAfterElements = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "li": true, "article": true,
	"section": true, "header": true,
}

// CleanToText parses HTML and returns searchable plain text, collapsing
// whitespace and skipping non-content elements.
func CleanToText(htmlBody string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	extractText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func extractText(n *html.Node, sb *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteString(" ")
		}
	case shouldSkip(n):
		return
	case n.Type == html.ElementNode && n.Data == "br":
		sb.WriteString(" ")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}

	if shouldAddSpaceAfter(n) {
		sb.WriteString(" ")
	}
}

func shouldSkip(n *html.Node) bool {
	return n.Type == html.ElementNode && skipElements[n.Data]
}

func shouldAddSpaceAfter(n *html.Node) bool {
	return n.Type == html.ElementNode && spaceAfterElements[n.Data]
}
