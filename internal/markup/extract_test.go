package markup

import (
	"strings"
	"testing"
)

const uploadImg = `<img src="//upload.wikimedia.org/pic.jpg" width="300">`

func TestExtractInterleavesBlocksInDocumentOrder(t *testing.T) {
	cleaned := `<p>alpha</p>` + uploadImg + `<p>beta</p>` +
		`<img src="//upload.wikimedia.org/two.png" width="250">` + `<p>gamma</p>`

	blocks, urls, _ := Extract(cleaned)

	wantKinds := []BlockKind{TextBlock, ImageBlock, TextBlock, ImageBlock, TextBlock}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(wantKinds), len(blocks), blocks)
	}
	for i, kind := range wantKinds {
		if blocks[i].Kind != kind {
			t.Errorf("block %d: expected kind %d, got %d", i, kind, blocks[i].Kind)
		}
	}

	if len(urls) != 2 {
		t.Fatalf("expected 2 image urls, got %v", urls)
	}
	if urls[0] != "https://upload.wikimedia.org/pic.jpg" {
		t.Errorf("expected https prefix on protocol-relative url, got %q", urls[0])
	}
}

func TestExtractImageFilter(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		keep bool
	}{
		{"big raster on media host", `<img src="//upload.wikimedia.org/a.png" width="200">`, true},
		{"wrong host", `<img src="//cdn.example.com/a.png" width="200">`, false},
		{"vector format", `<img src="//upload.wikimedia.org/a.svg" width="200">`, false},
		{"icon sized", `<img src="//upload.wikimedia.org/a.png" width="40">`, false},
		{"at threshold", `<img src="//upload.wikimedia.org/a.png" width="100">`, false},
		{"no width", `<img src="//upload.wikimedia.org/a.png">`, false},
		{"no src", `<img width="200">`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, urls, _ := Extract(`<p>x</p>` + tt.tag)
			if got := len(urls) == 1; got != tt.keep {
				t.Errorf("keep = %v, want %v (urls: %v)", got, tt.keep, urls)
			}
		})
	}
}

func TestExtractChapters(t *testing.T) {
	cleaned := `<p>intro</p>` + uploadImg +
		`<h2>History</h2><p>old things</p>` + uploadImg +
		`<h2>Geography</h2><p>places</p>`

	blocks, _, chapters := Extract(cleaned)

	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %+v", chapters)
	}
	if chapters[0].Title != "History" || chapters[1].Title != "Geography" {
		t.Errorf("unexpected chapter titles: %+v", chapters)
	}
	if chapters[0].Index != 1 || chapters[1].Index != 2 {
		t.Errorf("expected dense 1-based indices, got %+v", chapters)
	}

	prev := 0
	for _, ch := range chapters {
		if ch.BlockPos < prev {
			t.Errorf("block positions must be non-decreasing: %+v", chapters)
		}
		if ch.BlockPos < 0 || ch.BlockPos > len(blocks) {
			t.Errorf("block position %d out of range [0, %d]", ch.BlockPos, len(blocks))
		}
		prev = ch.BlockPos
	}
}

func TestExtractHeaderLinesMarked(t *testing.T) {
	blocks, _, chapters := Extract(`<h2>History</h2><p>body[1]</p>`)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 text block, got %+v", blocks)
	}
	lines := strings.Split(blocks[0].Text, "\n")
	if lines[0] != HeaderMarker+"History" {
		t.Errorf("expected marked header line, got %q", lines[0])
	}
	if lines[1] != "body" {
		t.Errorf("expected citation-stripped body line, got %q", lines[1])
	}
	if len(chapters) != 1 || chapters[0].Title != "History" {
		t.Errorf("expected History chapter, got %+v", chapters)
	}
}

func TestExtractDiscardsContentsHeading(t *testing.T) {
	blocks, _, chapters := Extract(`<h2>Contents</h2><p>body</p>`)

	if len(chapters) != 0 {
		t.Errorf("expected Contents heading discarded, got %+v", chapters)
	}
	for _, b := range blocks {
		if strings.Contains(b.Text, "Contents") {
			t.Errorf("Contents heading leaked into block text: %q", b.Text)
		}
	}
}

func TestExtractDropsBoilerplateLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"reference definition", "[1]: https://example.com"},
		{"jump prompt", "* Jump to navigation"},
		{"separator rule", "========"},
		{"link list remnant", "* [one][two]"},
		{"disambiguation hatnote", `"Foo" redirects here. For other uses, see Foo (disambiguation).`},
		{"series boilerplate", "This article is part of a series on things"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !dropLine(tt.line) {
				t.Errorf("expected %q dropped", tt.line)
			}
		})
	}

	if dropLine("An ordinary sentence.") {
		t.Error("expected ordinary line kept")
	}
}

func TestExtractEmptySegmentYieldsNoBlock(t *testing.T) {
	blocks, _, _ := Extract(`<div></div>` + uploadImg)

	if len(blocks) != 1 || blocks[0].Kind != ImageBlock {
		t.Errorf("expected only the image block, got %+v", blocks)
	}
}

func TestProcessScenario(t *testing.T) {
	raw := `<table class="infobox">X</table><p>Hello</p>` +
		`<img src="//upload.wikimedia.org/a.png" width="200">`

	article := Process("Test", raw)

	if !strings.Contains(article.Infobox, "X") {
		t.Errorf("expected infobox text containing X, got %q", article.Infobox)
	}
	if len(article.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %+v", article.Blocks)
	}
	if article.Blocks[0].Kind != TextBlock || article.Blocks[0].Text != "Hello" {
		t.Errorf("expected text block Hello, got %+v", article.Blocks[0])
	}
	if article.Blocks[1].Kind != ImageBlock ||
		article.Blocks[1].URL != "https://upload.wikimedia.org/a.png" {
		t.Errorf("expected upload image block, got %+v", article.Blocks[1])
	}
	if len(article.Chapters) != 0 {
		t.Errorf("expected no chapters, got %+v", article.Chapters)
	}
}
