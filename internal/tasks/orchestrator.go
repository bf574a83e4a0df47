// Package tasks runs the session's background work: searches, article
// fetches, and image downloads, each dispatched as its own goroutine.
// Results come back on a single event queue the interactive loop drains
// without blocking.
package tasks

import (
	"bytes"
	"context"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/mgomes/wikitea/internal/logging"
	"github.com/mgomes/wikitea/internal/markup"
	"github.com/mgomes/wikitea/internal/wiki"
)

const queueSize = 64

// Client is the remote-source surface the orchestrator needs.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]wiki.SearchResult, error)
	FetchMarkup(ctx context.Context, title string) (string, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Cache is the optional local article cache; a nil Cache disables it.
type Cache interface {
	GetArticle(title string) (string, bool, error)
	PutArticle(title, markup string) error
	RecordSearch(query string) error
}

type Orchestrator struct {
	client  Client
	cache   Cache
	actions chan Action
	events  chan Event
}

func New(client Client, cache Cache) *Orchestrator {
	return &Orchestrator{
		client:  client,
		cache:   cache,
		actions: make(chan Action, queueSize),
		events:  make(chan Event, queueSize),
	}
}

// Events is the outbound queue; the session loop drains it each tick with
// non-blocking receives.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Do enqueues an action. A full queue drops the action rather than stall
// the interactive loop.
func (o *Orchestrator) Do(a Action) {
	select {
	case o.actions <- a:
	default:
		logging.Errorf("action queue full, dropping %T", a)
	}
}

// Publish pushes an event from outside the dispatch path (the config
// watcher uses this for theme changes).
func (o *Orchestrator) Publish(e Event) {
	select {
	case o.events <- e:
	default:
		logging.Errorf("event queue full, dropping %T", e)
	}
}

// Start runs the dispatch loop until ctx is cancelled. Each dequeued
// action runs in its own goroutine; no in-flight limit is imposed.
func (o *Orchestrator) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case a := <-o.actions:
				go o.handle(ctx, a)
			}
		}
	}()
}

func (o *Orchestrator) handle(ctx context.Context, a Action) {
	switch a := a.(type) {
	case SearchAction:
		o.search(ctx, a)
	case FetchArticleAction:
		// The fetch and parse run in a further goroutine so a slow parse
		// never holds up other dequeued work behind it.
		go o.fetchArticle(ctx, a)
	case DownloadImageAction:
		o.downloadImage(ctx, a)
	}
}

func (o *Orchestrator) search(ctx context.Context, a SearchAction) {
	if o.cache != nil {
		if err := o.cache.RecordSearch(a.Query); err != nil {
			logging.Errorf("recording search %q: %v", a.Query, err)
		}
	}

	results, err := o.client.Search(ctx, a.Query, a.Limit)
	if err != nil {
		logging.Errorf("search %q: %v", a.Query, err)
		o.Publish(FailureEvent{Message: err.Error(), Gen: a.Gen})
		return
	}
	o.Publish(SearchResultsEvent{Results: results, Gen: a.Gen})
}

func (o *Orchestrator) fetchArticle(ctx context.Context, a FetchArticleAction) {
	raw, ok := o.cachedMarkup(a.Title)
	if !ok {
		var err error
		raw, err = o.client.FetchMarkup(ctx, a.Title)
		if err != nil {
			logging.Errorf("fetching %q: %v", a.Title, err)
			o.Publish(FailureEvent{Message: err.Error(), Gen: a.Gen})
			return
		}
		if o.cache != nil {
			if err := o.cache.PutArticle(a.Title, raw); err != nil {
				logging.Errorf("caching %q: %v", a.Title, err)
			}
		}
	}

	article := markup.Process(a.Title, raw)
	o.Publish(ArticleLoadedEvent{Article: article, Gen: a.Gen})
}

func (o *Orchestrator) cachedMarkup(title string) (string, bool) {
	if o.cache == nil {
		return "", false
	}
	raw, ok, err := o.cache.GetArticle(title)
	if err != nil {
		logging.Errorf("cache read %q: %v", title, err)
		return "", false
	}
	return raw, ok
}

func (o *Orchestrator) downloadImage(ctx context.Context, a DownloadImageAction) {
	data, err := o.client.FetchImage(ctx, a.URL)
	if err != nil {
		// A missing context image is not worth interrupting reading over.
		logging.Errorf("downloading %s: %v", a.URL, err)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Errorf("decoding %s: %v", a.URL, err)
		return
	}

	o.Publish(ImageDownloadedEvent{URL: a.URL, Image: img, Gen: a.Gen})
}
