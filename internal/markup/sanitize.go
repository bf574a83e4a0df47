package markup

import "strings"

// sanitizeRules are applied in order. The first pass removes block-level
// container tables carrying navigation/metadata keywords, the second the
// inline chrome divs. Keyword matching is a plain case-sensitive substring
// test against the opening tag's attribute text, matching what the wiki
// renderer emits.
var sanitizeRules = []struct {
	element  string
	keywords []string
}{
	{"table", []string{"infobox", "sidebar", "vertical-navbox", "ambox", "metadata"}},
	{"div", []string{"hatnote", "shortdescription", "toc", "siteSub", "mw-empty-elt"}},
}

// Sanitize removes non-article structural elements from raw markup and
// captures the first infobox table, verbatim, before it is deleted. Later
// infobox-like tables are deleted without capture. An element whose closing
// tag never appears aborts the remainder of that rule's pass only.
func Sanitize(raw string) (infobox, cleaned string) {
	cleaned = raw
	for _, rule := range sanitizeRules {
		cleaned = stripElements(cleaned, rule.element, rule.keywords, &infobox)
	}
	return infobox, cleaned
}

// stripElements scans src with an explicit cursor, copying retained spans
// into an output buffer rather than splicing the string in place.
func stripElements(src, element string, keywords []string, infobox *string) string {
	openTag := "<" + element
	closeTag := "</" + element + ">"

	var out strings.Builder
	pos := 0
	for {
		rel := strings.Index(src[pos:], openTag)
		if rel < 0 {
			break
		}
		at := pos + rel

		tagEnd := strings.IndexByte(src[at:], '>')
		if tagEnd < 0 {
			break
		}
		attrs := src[at : at+tagEnd]

		end, ok := elementEnd(src, at, openTag, closeTag)
		if !ok {
			// Malformed nesting: abort this rule's pass over the rest.
			break
		}

		if containsAny(attrs, keywords) {
			if element == "table" && strings.Contains(attrs, "infobox") && *infobox == "" {
				*infobox = src[at:end]
			}
			out.WriteString(src[pos:at])
			pos = end
		} else {
			// Not a target: keep it, but resume one character past the
			// opening so nested targets inside it are still found.
			out.WriteString(src[pos : at+1])
			pos = at + 1
		}
	}
	out.WriteString(src[pos:])
	return out.String()
}

// elementEnd returns the index just past the closing tag that balances the
// opening tag at start, tracking nesting depth of the same element name.
func elementEnd(src string, start int, openTag, closeTag string) (int, bool) {
	depth := 1
	scan := start + 1
	for depth > 0 {
		nextOpen := strings.Index(src[scan:], openTag)
		nextClose := strings.Index(src[scan:], closeTag)

		switch {
		case nextClose < 0:
			return 0, false
		case nextOpen >= 0 && nextOpen < nextClose:
			depth++
			scan += nextOpen + 1
		default:
			depth--
			scan += nextClose + len(closeTag)
		}
	}
	return scan, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
