// Package tui holds the session state machine and its bubbletea view.
// The model is the sole owner of session data; background results arrive
// as events drained from the orchestrator queue on each tick.
package tui

import (
	"image"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgomes/wikitea/internal/markup"
	"github.com/mgomes/wikitea/internal/tasks"
	"github.com/mgomes/wikitea/internal/wiki"
)

type sessionState int

const (
	stateHome sessionState = iota
	stateSearching
	stateCommand
	stateChapters
	stateLoading
	stateResults
	stateReading
	stateError
)

const tickInterval = 100 * time.Millisecond

// Dispatcher accepts background actions; satisfied by tasks.Orchestrator.
type Dispatcher interface {
	Do(tasks.Action)
}

type Model struct {
	state   sessionState
	errText string

	input       textinput.Model
	results     []wiki.SearchResult
	selected    int
	article     markup.Article
	scroll      int
	chapterSel  int
	images      map[string]image.Image
	recent      []string
	themeColor  string
	searchLimit int

	// generation stamps outgoing actions; events echoing an older value
	// are from an abandoned request and are discarded.
	generation uint64

	dispatch Dispatcher
	events   <-chan tasks.Event

	width  int
	height int
}

func NewModel(dispatch Dispatcher, events <-chan tasks.Event, themeColor string, searchLimit int, recent []string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	return Model{
		state:       stateHome,
		input:       input,
		images:      make(map[string]image.Image),
		recent:      recent,
		themeColor:  themeColor,
		searchLimit: searchLimit,
		dispatch:    dispatch,
		events:      events,
	}
}

// WithSearch starts the session already loading results for query.
func (m Model) WithSearch(query string) Model {
	m.generation++
	m.state = stateLoading
	m.dispatch.Do(tasks.SearchAction{Query: query, Limit: m.searchLimit, Gen: m.generation})
	return m
}

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m = m.drainEvents()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// drainEvents applies every currently queued event without blocking.
func (m Model) drainEvents() Model {
	if m.events == nil {
		return m
	}
	for {
		select {
		case e := <-m.events:
			m = m.applyEvent(e)
		default:
			return m
		}
	}
}

func (m Model) applyEvent(e tasks.Event) Model {
	switch e := e.(type) {
	case tasks.SearchResultsEvent:
		if e.Gen != m.generation {
			return m
		}
		m.results = e.Results
		m.selected = 0
		m.state = stateResults

	case tasks.ArticleLoadedEvent:
		if e.Gen != m.generation {
			return m
		}
		m.article = e.Article
		m.images = make(map[string]image.Image)
		m.scroll = 0
		m.chapterSel = 0
		m.state = stateReading
		for _, url := range e.Article.Images {
			m.dispatch.Do(tasks.DownloadImageAction{URL: url, Gen: m.generation})
		}

	case tasks.ImageDownloadedEvent:
		if e.Gen != m.generation {
			return m
		}
		m.images[e.URL] = e.Image

	case tasks.ThemeChangedEvent:
		m.themeColor = e.Color

	case tasks.FailureEvent:
		if e.Gen != m.generation {
			return m
		}
		m.errText = e.Message
		m.state = stateError
	}

	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSearching:
		return m.handleSearchingKey(msg)
	case stateCommand:
		return m.handleCommandKey(msg)
	case stateReading:
		return m.handleReadingKey(msg)
	case stateChapters:
		return m.handleChaptersKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleSearchingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateHome
		m.input.Reset()
		return m, nil
	case "enter":
		query := m.input.Value()
		if query == "" {
			return m, nil
		}
		m.generation++
		m.state = stateLoading
		m.dispatch.Do(tasks.SearchAction{Query: query, Limit: m.searchLimit, Gen: m.generation})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateReading
		m.input.Reset()
		return m, nil
	case "enter":
		// Jump to the chapter with the entered 1-based index; silently
		// a no-op when the input is not a known index.
		if idx, err := strconv.Atoi(m.input.Value()); err == nil {
			for _, ch := range m.article.Chapters {
				if ch.Index == idx {
					m.scroll = m.chapterScrollTarget(ch)
					break
				}
			}
		}
		m.state = stateReading
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleReadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.state = stateResults
	case "/":
		m.input.Reset()
		m.input.Focus()
		m.state = stateSearching
	case ":":
		m.input.Reset()
		m.input.Focus()
		m.state = stateCommand
	case "c":
		if m.chapterSel >= len(m.article.Chapters) {
			m.chapterSel = 0
		}
		m.state = stateChapters
	case "j", "down":
		m.scroll++
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
	}
	return m, nil
}

func (m Model) handleChaptersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "c":
		m.state = stateReading
	case "j", "down":
		if m.chapterSel < len(m.article.Chapters)-1 {
			m.chapterSel++
		}
	case "k", "up":
		if m.chapterSel > 0 {
			m.chapterSel--
		}
	case "enter":
		if m.chapterSel < len(m.article.Chapters) {
			m.scroll = m.chapterScrollTarget(m.article.Chapters[m.chapterSel])
		}
		m.state = stateReading
	}
	return m, nil
}

// handleBrowseKey covers Home, Loading, Results, and Error.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.state = stateHome
	case "/":
		m.input.Reset()
		m.input.Focus()
		m.state = stateSearching
	case "enter":
		if m.state == stateResults && m.selected < len(m.results) {
			m.generation++
			m.state = stateLoading
			m.dispatch.Do(tasks.FetchArticleAction{
				Title: m.results[m.selected].Title,
				Gen:   m.generation,
			})
		}
	case "j", "down":
		if m.state == stateResults && m.selected < len(m.results)-1 {
			m.selected++
		}
	case "k", "up":
		if m.state == stateResults && m.selected > 0 {
			m.selected--
		}
	}
	return m, nil
}

// chapterScrollTarget is the exact rendered-line offset of the block that
// contains the chapter's header at the current content width.
func (m Model) chapterScrollTarget(ch markup.Chapter) int {
	end := ch.BlockPos - 1
	if end < 0 {
		end = 0
	}
	if end > len(m.article.Blocks) {
		end = len(m.article.Blocks)
	}

	width := m.contentWidth()
	lines := 0
	for _, b := range m.article.Blocks[:end] {
		lines += renderedLineCount(b, width)
	}
	return lines
}
