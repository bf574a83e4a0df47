package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// ToText renders an HTML fragment into plain text lines, wrapped at the
// given column width. Headings come out with a leading run of '#' so the
// extractor can recognize them, list items with a leading "* ". Table
// cells each land on their own line, which approximates a compact
// key/value layout for infobox content when width is small.
func ToText(src string, width int) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	w := &textWriter{width: width}
	w.walk(doc)
	w.flush()
	return w.out.String()
}

type textWriter struct {
	width int
	out   strings.Builder
	para  []string // pending inline words
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		for _, word := range strings.Fields(n.Data) {
			w.para = append(w.para, word)
		}
		return

	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head", "title", "noscript":
			return

		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.flush()
			level := int(n.Data[1] - '0')
			text := collapsedText(n)
			if text != "" {
				w.out.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
			}
			return

		case "p", "blockquote", "pre", "figure", "figcaption":
			w.flush()
			w.walkChildren(n)
			w.flush()
			return

		case "li":
			w.flush()
			w.para = append(w.para, "*")
			w.walkChildren(n)
			w.flush()
			return

		case "td", "th", "tr", "caption", "dt", "dd":
			w.flush()
			w.walkChildren(n)
			w.flush()
			return

		case "br":
			w.flush()
			return
		}
	}

	w.walkChildren(n)
}

func (w *textWriter) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// flush wraps the pending inline words at the configured width and writes
// them out, followed by a blank line separating blocks.
func (w *textWriter) flush() {
	if len(w.para) == 0 {
		return
	}

	col := 0
	for _, word := range w.para {
		need := len(word)
		if col > 0 {
			need++
		}
		if col > 0 && col+need > w.width {
			w.out.WriteByte('\n')
			col = 0
		}
		if col > 0 {
			w.out.WriteByte(' ')
			col++
		}
		w.out.WriteString(word)
		col += len(word)
	}
	w.out.WriteString("\n\n")
	w.para = nil
}

func collapsedText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
