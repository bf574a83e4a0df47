package markup

import (
	"strings"
	"unicode/utf8"
)

const (
	// Infobox content is converted at a short wrap width to approximate a
	// compact key/value layout; the body is left effectively unwrapped and
	// wrapped again at render time.
	infoboxWrapWidth = 50
	bodyWrapWidth    = 10000

	// Lookahead window for the closing bracket in infobox context. Body
	// context scans to end of line.
	infoboxBracketWindow = 5
)

// StripCitations removes citation and edit markers from a body line. A
// bracketed span is deleted outright when its content is all-numeric, the
// literal "edit", or a single character; any other span keeps its content
// with the brackets removed. A lone unmatched ']' is dropped. Idempotent.
func StripCitations(line string) string {
	return stripBrackets(line, 0)
}

// stripBrackets is the shared bracket rule. window bounds the lookahead
// for the closing bracket; zero means unbounded.
func stripBrackets(line string, window int) string {
	runes := []rune(line)
	var out []rune

	for i := 0; i < len(runes); {
		switch runes[i] {
		case '[':
			limit := len(runes)
			if window > 0 && i+1+window < limit {
				limit = i + 1 + window
			}
			close := -1
			for j := i + 1; j < limit; j++ {
				if runes[j] == ']' {
					close = j
					break
				}
			}
			if close < 0 {
				// No closing bracket in range: keep the literal '['.
				out = append(out, runes[i])
				i++
				continue
			}
			if isCitation(string(runes[i+1 : close])) {
				i = close + 1
				continue
			}
			// Unwrap: drop the '[' and keep scanning the content; the
			// matching ']' is dropped when reached.
			i++
		case ']':
			i++
		default:
			out = append(out, runes[i])
			i++
		}
	}

	return strings.TrimSpace(string(out))
}

func isCitation(content string) bool {
	if content == "edit" {
		return true
	}
	if utf8.RuneCountInString(content) == 1 {
		return true
	}
	for _, r := range content {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CleanInfobox cleans infobox plain text: separator rules and file/wikilink
// remnants are dropped, runs of blank lines collapse to one, and citation
// markers are stripped with the bounded bracket rule.
func CleanInfobox(raw string) string {
	var out []string
	lastBlank := true

	for _, line := range strings.Split(raw, "\n") {
		t := strings.TrimSpace(line)

		if t == "" {
			if !lastBlank {
				out = append(out, "")
				lastBlank = true
			}
			continue
		}
		if separatorOnly(t) {
			continue
		}
		if strings.HasPrefix(t, "[[") || strings.Contains(t, "File:") {
			continue
		}
		if strings.HasPrefix(t, "[") && strings.Contains(t, "]:") {
			continue
		}

		cleaned := stripBrackets(t, infoboxBracketWindow)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
		lastBlank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

func separatorOnly(s string) bool {
	for _, r := range s {
		switch r {
		case '_', '-', '─', '|', ' ':
		default:
			return false
		}
	}
	return true
}
