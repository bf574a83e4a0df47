package markup

import "strings"

const (
	mediaHost         = "upload.wikimedia.org"
	minImageWidth     = 100
	contentsHeading   = "Contents"
	seriesBoilerplate = "This article is part of a series"
)

// Extract splits sanitized markup into an ordered sequence of text and
// image blocks, collects the URLs of kept images, and builds the chapter
// index. Block order is strict document order.
func Extract(cleaned string) (blocks []Block, imageURLs []string, chapters []Chapter) {
	parts := strings.Split(cleaned, "<img")
	chapterCounter := 1

	appendText := func(segment string) {
		text, found := processSegment(segment, len(blocks), &chapterCounter, &chapters)
		if found {
			blocks = append(blocks, Block{Kind: TextBlock, Text: text})
		}
	}

	appendText(parts[0])

	for _, part := range parts[1:] {
		tagEnd := strings.IndexByte(part, '>')
		if tagEnd < 0 {
			continue
		}
		tag := part[:tagEnd]
		rest := part[tagEnd+1:]

		if url, ok := imageSource(tag); ok && imageIsBig(tag) {
			imageURLs = append(imageURLs, url)
			blocks = append(blocks, Block{Kind: ImageBlock, URL: url})
		}

		appendText(rest)
	}

	return blocks, imageURLs, chapters
}

// imageSource pulls the src attribute out of an image tag fragment and
// keeps only raster images from the expected media host.
func imageSource(tag string) (string, bool) {
	idx := strings.Index(tag, `src="`)
	if idx < 0 {
		return "", false
	}
	rest := tag[idx+len(`src="`):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	url := rest[:end]

	if !strings.Contains(url, mediaHost) || strings.HasSuffix(url, ".svg") {
		return "", false
	}
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return url, true
}

// imageIsBig reports whether the width attribute exceeds the icon
// threshold. Images without a parsable width are treated as icons.
func imageIsBig(tag string) bool {
	idx := strings.Index(tag, `width="`)
	if idx < 0 {
		return false
	}
	rest := tag[idx+len(`width="`):]
	width := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		width = width*10 + int(r-'0')
	}
	return width > minImageWidth
}

// processSegment converts one text segment to plain lines, filters
// boilerplate, promotes headers to chapters, and strips citation markers
// from body lines. It returns the joined surviving lines and whether any
// line survived; an empty segment yields no block.
func processSegment(segment string, blockOffset int, counter *int, chapters *[]Chapter) (string, bool) {
	text := ToText(segment, bodyWrapWidth)

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)

		if dropLine(t) {
			continue
		}

		if title, ok := headerTitle(t); ok {
			if title == "" || title == contentsHeading {
				continue
			}
			*chapters = append(*chapters, Chapter{
				Index:    *counter,
				Title:    title,
				BlockPos: blockOffset + 1,
			})
			*counter++
			kept = append(kept, HeaderMarker+title)
			continue
		}

		if t == "" {
			continue
		}
		if cleaned := StripCitations(t); cleaned != "" {
			kept = append(kept, cleaned)
		}
	}

	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "\n"), true
}

// dropLine filters reference-link definitions, navigation prompts,
// separator rules, and hatnote remnants left over from conversion.
func dropLine(t string) bool {
	if strings.HasPrefix(t, "[") && strings.Contains(t, "]:") {
		return true
	}
	if strings.HasPrefix(t, "*") &&
		(strings.Contains(t, "Jump to search") || strings.Contains(t, "Jump to navigation")) {
		return true
	}
	if t != "" && ruleOnly(t) {
		return true
	}
	if strings.HasPrefix(t, "* [") && strings.Contains(t, "][") {
		return true
	}
	if strings.Contains(t, "redirects here") &&
		(strings.Contains(t, "For other uses") || strings.Contains(t, "disambiguation")) {
		return true
	}
	if strings.HasPrefix(t, seriesBoilerplate) {
		return true
	}
	return false
}

// ruleOnly reports whether the line is a separator made solely of '=' or
// '-' characters.
func ruleOnly(t string) bool {
	for _, r := range t {
		if r != '=' && r != '-' {
			return false
		}
	}
	return true
}

// headerTitle classifies a line as a section header and returns the
// stripped display title. Headers either start with a heading marker or
// are wrapped in a double-equals pair.
func headerTitle(t string) (string, bool) {
	if strings.HasPrefix(t, "#") {
		return strings.TrimSpace(strings.TrimLeft(t, "#")), true
	}
	if strings.HasPrefix(t, "==") && strings.HasSuffix(t, "==") {
		return strings.TrimSpace(strings.Trim(t, "=")), true
	}
	return "", false
}
