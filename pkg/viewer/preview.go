package viewer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DefaultMaxPreview is the preview length used when none is configured.
const DefaultMaxPreview = 8000

// Preview is the readable part of an HTML document.
type Preview struct {
	Title     string
	Text      string
	Truncated bool
}

// ExtractPreview returns the title and visible text of rawHTML. Block
// elements start new lines and runs of whitespace collapse to one space.
// Text is cut at maxLength bytes (on a rune boundary); zero means no limit.
func ExtractPreview(rawHTML string, maxLength int) (*Preview, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &textWriter{max: maxLength}
	w.walk(doc)

	return &Preview{
		Title:     extractTitle(doc),
		Text:      w.b.String(),
		Truncated: w.truncated,
	}, nil
}

type textWriter struct {
	b         strings.Builder
	max       int
	truncated bool

	pendingSpace bool
	pendingBreak bool
}

func (w *textWriter) walk(n *html.Node) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if isSkippedElement(tag) {
			return
		}
		if tag == "br" || isBlockElement(tag) {
			w.pendingBreak = true
		}
		defer func() {
			if isBlockElement(tag) {
				w.pendingBreak = true
			}
		}()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
		if w.truncated {
			return
		}
	}
}

func (w *textWriter) text(data string) {
	if data != "" && isSpace(data[0]) {
		w.pendingSpace = true
	}
	for _, word := range strings.Fields(data) {
		if w.b.Len() > 0 {
			switch {
			case w.pendingBreak:
				w.emit("\n")
			case w.pendingSpace:
				w.emit(" ")
			}
		}
		w.pendingBreak, w.pendingSpace = false, false
		w.emit(word)
		if w.truncated {
			return
		}
		w.pendingSpace = true
	}
	if data != "" && !isSpace(data[len(data)-1]) {
		w.pendingSpace = false
	}
}

func (w *textWriter) emit(s string) {
	if w.truncated {
		return
	}
	if w.max > 0 && w.b.Len()+len(s) > w.max {
		w.b.WriteString(truncateUTF8(s, w.max-w.b.Len()))
		w.truncated = true
		return
	}
	w.b.WriteString(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// isSkippedElement returns true for elements whose content is never shown.
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "head", "script", "style", "noscript", "template", "iframe", "embed", "object", "svg":
		return true
	}
	return false
}

// isBlockElement returns true for elements that start a new line.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "div", "p", "section", "article", "header", "footer", "nav", "main", "aside",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "table", "tr",
		"form", "fieldset", "blockquote", "pre", "hr", "dl", "dt", "dd", "figure":
		return true
	}
	return false
}

// extractTitle extracts the page title from the document
func extractTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.Join(strings.Fields(n.FirstChild.Data), " ")
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}
