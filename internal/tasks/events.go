package tasks

import (
	"image"

	"github.com/mgomes/wikitea/internal/markup"
	"github.com/mgomes/wikitea/internal/wiki"
)

// Action is a fire-and-forget request from the session to the
// orchestrator. Actions carry the session generation that issued them;
// results echoing an older generation are discarded by the session.
type Action interface{ isAction() }

type SearchAction struct {
	Query string
	Limit int
	Gen   uint64
}

type FetchArticleAction struct {
	Title string
	Gen   uint64
}

type DownloadImageAction struct {
	URL string
	Gen uint64
}

func (SearchAction) isAction()        {}
func (FetchArticleAction) isAction()  {}
func (DownloadImageAction) isAction() {}

// Event is a completed result flowing back to the session loop.
type Event interface{ isEvent() }

type SearchResultsEvent struct {
	Results []wiki.SearchResult
	Gen     uint64
}

type ArticleLoadedEvent struct {
	Article markup.Article
	Gen     uint64
}

type ImageDownloadedEvent struct {
	URL   string
	Image image.Image
	Gen   uint64
}

type ThemeChangedEvent struct {
	Color string
}

type FailureEvent struct {
	Message string
	Gen     uint64
}

func (SearchResultsEvent) isEvent()   {}
func (ArticleLoadedEvent) isEvent()   {}
func (ImageDownloadedEvent) isEvent() {}
func (ThemeChangedEvent) isEvent()    {}
func (FailureEvent) isEvent()         {}
