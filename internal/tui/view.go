package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/wikitea/internal/markup"
)

const (
	sidebarWidth    = 40
	minContentWidth = 20
	frameOverhead   = 4 // border plus padding, both sides
)

func (m Model) View() string {
	width, height := m.dimensions()

	switch m.state {
	case stateHome:
		return m.viewHome(width, height)
	case stateSearching:
		return m.viewWithInput(m.dimmedMain(width, height-3), "Search Query", m.input.View(), width)
	case stateCommand:
		return m.viewWithInput(m.viewReading(width, height-3, false), "Command", commandStyle.Render(":"+m.input.View()), width)
	case stateLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			themedTitle(m.themeColor).Render("Fetching..."))
	case stateResults:
		return m.viewResults(width, height)
	case stateReading:
		return m.viewReading(width, height, false)
	case stateChapters:
		return m.viewReading(width, height, true)
	case stateError:
		return m.viewError(width, height)
	}
	return ""
}

func (m Model) dimensions() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

func (m Model) contentWidth() int {
	width, _ := m.dimensions()
	if len(m.article.Chapters) > 0 {
		width -= sidebarWidth
	}
	width -= frameOverhead
	if width < minContentWidth {
		width = minContentWidth
	}
	return width
}

func (m Model) viewHome(width, height int) string {
	var b strings.Builder

	b.WriteString(themedTitle(m.themeColor).Render("Welcome to wikitea") + "\n\n")
	b.WriteString("Controls\n")
	b.WriteString("────────\n")
	b.WriteString("  /      : Search\n")
	b.WriteString("  Enter  : Select Article\n")
	b.WriteString("  j / k  : Scroll\n")
	b.WriteString("  :      : Jump to Chapter\n")
	b.WriteString("  c      : Chapters Mode\n")
	b.WriteString("  q      : Quit\n")

	if len(m.recent) > 0 {
		b.WriteString("\nRecent searches\n")
		for i, q := range m.recent {
			if i >= 5 {
				break
			}
			b.WriteString(dimStyle.Render("  "+q) + "\n")
		}
	}

	return themedBorder(m.themeColor).
		Width(width - 2).
		Height(height - 2).
		Render(lipgloss.PlaceHorizontal(width-frameOverhead, lipgloss.Center, b.String()))
}

func (m Model) viewResults(width, height int) string {
	var b strings.Builder

	b.WriteString(themedTitle(m.themeColor).Render("Search Results") + "\n\n")

	for i, r := range m.results {
		line := " " + r.Title + " "
		if i == m.selected {
			b.WriteString(themedSelection(m.themeColor).Render(">"+line) + "\n")
		} else {
			b.WriteString(" " + line + "\n")
		}
		if r.Snippet != "" {
			b.WriteString(dimStyle.Render("   "+r.Snippet) + "\n")
		}
	}
	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("No results") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ navigate  enter open  / search  q quit"))

	return themedBorder(m.themeColor).
		Width(width - 2).
		Height(height - 2).
		Render(clipToHeight(b.String(), height-frameOverhead))
}

func (m Model) viewError(width, height int) string {
	msg := errorStyle.Render("Error: "+m.errText) + "\n\n" +
		helpStyle.Render("/ search  esc home  q quit")
	return errorBorderStyle.
		Width(width - 2).
		Height(height - 2).
		Render(msg)
}

func (m Model) dimmedMain(width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("238")).
		Width(width - 2).
		Height(height - 2).
		Render("")
}

func (m Model) viewWithInput(main, title, inputView string, width int) string {
	label := themedTitle(m.themeColor).Render(" " + title + " ")
	box := themedBorder(m.themeColor).
		Width(width - 2).
		Render(label + " " + inputView)
	return lipgloss.JoinVertical(lipgloss.Left, main, box)
}

// viewReading renders the article pane, plus the image/chapter sidebar
// when the article has chapters.
func (m Model) viewReading(width, height int, focusChapters bool) string {
	contentW := m.contentWidth()
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	title := themedTitle(m.themeColor).Render(m.article.Title)
	body := append([]string{title, ""}, clipLines(m.renderedLines(contentW), m.scroll, innerH-2)...)

	boxW := contentW + frameOverhead - 2
	content := themedBorder(m.themeColor).
		Width(boxW).
		Height(innerH).
		Render(strings.Join(body, "\n"))

	if len(m.article.Chapters) == 0 {
		return content
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewSidebar(height, focusChapters))
}

func (m Model) viewSidebar(height int, focusChapters bool) string {
	topH := height / 2
	bottomH := height - topH
	innerW := sidebarWidth - frameOverhead

	imgContent := ""
	if url := m.activeImageURL(); url != "" {
		if img, ok := m.images[url]; ok {
			imgContent = renderImageCells(img, innerW, topH-4)
		} else {
			imgContent = dimStyle.Render("[Loading Image...]")
		}
	} else if m.article.Infobox != "" {
		imgContent = clipToHeight(m.article.Infobox, topH-4)
	}
	imgBox := themedBorder(m.themeColor).
		Width(sidebarWidth - 2).
		Height(topH - 2).
		Render(themedTitle(m.themeColor).Render("Context") + "\n" + imgContent)

	chapColor := m.themeColor
	if focusChapters {
		chapColor = string(focusColor)
	}

	var b strings.Builder
	b.WriteString(themedTitle(chapColor).Render("Chapter Reference") + "\n")
	for i, ch := range m.article.Chapters {
		line := fmt.Sprintf("%d. %s", ch.Index, ch.Title)
		if len(line) > innerW {
			line = line[:innerW]
		}
		if i == m.chapterSel {
			line = themedSelection(m.themeColor).Render(line)
		}
		b.WriteString(line + "\n")
	}

	chapBox := themedBorder(chapColor).
		Width(sidebarWidth - 2).
		Height(bottomH - 2).
		Render(clipToHeight(b.String(), bottomH-3))

	return lipgloss.JoinVertical(lipgloss.Left, imgBox, chapBox)
}

// activeImageURL picks the image block nearest the top of the viewport:
// the last one at or just below the current scroll line, else the first
// one further down.
func (m Model) activeImageURL() string {
	width := m.contentWidth()
	line := 0
	best := ""

	for _, b := range m.article.Blocks {
		if b.Kind == markup.ImageBlock {
			if best == "" || line <= m.scroll+15 {
				best = b.URL
			}
			continue
		}
		line += renderedLineCount(b, width)
		if line > m.scroll+15 && best != "" {
			break
		}
	}
	return best
}

// renderedLines flattens text blocks into styled display lines. Image
// blocks occupy no inline rows; the active one shows in the sidebar.
func (m Model) renderedLines(width int) []string {
	var out []string
	for _, b := range m.article.Blocks {
		if b.Kind != markup.TextBlock {
			continue
		}
		for _, line := range strings.Split(b.Text, "\n") {
			if title, ok := strings.CutPrefix(line, markup.HeaderMarker); ok {
				out = append(out, themedHeader(m.themeColor).Render(title), "")
				continue
			}
			out = append(out, wrapLine(line, width)...)
		}
	}
	return out
}

// renderedLineCount mirrors renderedLines for a single block; chapter
// scroll offsets are precomputed from it.
func renderedLineCount(b markup.Block, width int) int {
	if b.Kind != markup.TextBlock {
		return 0
	}
	n := 0
	for _, line := range strings.Split(b.Text, "\n") {
		if strings.HasPrefix(line, markup.HeaderMarker) {
			n += 2
			continue
		}
		n += len(wrapLine(line, width))
	}
	return n
}

func clipLines(lines []string, offset, max int) []string {
	if max < 0 {
		max = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	lines = lines[offset:]
	if len(lines) > max {
		lines = lines[:max]
	}
	return lines
}

func clipToHeight(s string, max int) string {
	if max < 1 {
		max = 1
	}
	lines := strings.Split(s, "\n")
	if len(lines) > max {
		lines = lines[:max]
	}
	return strings.Join(lines, "\n")
}

// wrapLine word-wraps one line at width; an empty line stays one row.
func wrapLine(line string, width int) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}

	words := strings.Fields(line)
	var out []string
	var cur strings.Builder

	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
