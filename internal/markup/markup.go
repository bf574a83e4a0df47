// Package markup turns rendered MediaWiki article HTML into displayable
// content: an ordered sequence of text and image blocks, a chapter index,
// and a standalone infobox summary.
package markup

// BlockKind discriminates the two content block variants.
type BlockKind int

const (
	TextBlock BlockKind = iota
	ImageBlock
)

// Block is one unit of article content in document order: either a run of
// cleaned text lines or a single image reference.
type Block struct {
	Kind BlockKind
	Text string // TextBlock: newline-joined lines
	URL  string // ImageBlock: absolute image URL
}

// Chapter is a section header discovered in document order, anchored to a
// position in the block sequence.
type Chapter struct {
	Index    int // 1-based, dense, discovery order
	Title    string
	BlockPos int
}

// Article is a fully processed article. It replaces the previous article
// wholesale on load, never partially.
type Article struct {
	Title    string
	Infobox  string
	Blocks   []Block
	Images   []string
	Chapters []Chapter
}

// HeaderMarker prefixes retained section-header lines inside text blocks so
// the view can style them. Header lines bypass body-line filtering.
const HeaderMarker = "###HEADER###"

// Process runs the full pipeline on raw article HTML: sanitize, clean the
// captured infobox, and extract blocks, image URLs, and chapters.
func Process(title, raw string) Article {
	infobox, cleaned := Sanitize(raw)

	infoboxText := ""
	if infobox != "" {
		infoboxText = CleanInfobox(ToText(infobox, infoboxWrapWidth))
	}

	blocks, images, chapters := Extract(cleaned)

	return Article{
		Title:    title,
		Infobox:  infoboxText,
		Blocks:   blocks,
		Images:   images,
		Chapters: chapters,
	}
}
