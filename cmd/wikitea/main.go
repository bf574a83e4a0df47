package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgomes/wikitea/internal/config"
	"github.com/mgomes/wikitea/internal/logging"
	"github.com/mgomes/wikitea/internal/store"
	"github.com/mgomes/wikitea/internal/tasks"
	"github.com/mgomes/wikitea/internal/tui"
	"github.com/mgomes/wikitea/internal/wiki"
)

func main() {
	query := flag.String("q", "", "start with a search query")
	noCache := flag.Bool("nocache", false, "skip the local article cache")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var cache tasks.Cache
	var recent []string
	if !*noCache {
		if st := openStore(); st != nil {
			defer st.Close() //nolint:errcheck
			cache = st
			recent, _ = st.RecentSearches(5)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orch := tasks.New(wiki.NewClient(cfg.UserAgent), cache)
	orch.Start(ctx)

	watcher, err := config.NewWatcher(func(color string) {
		orch.Publish(tasks.ThemeChangedEvent{Color: color})
	})
	if err != nil {
		logging.Errorf("config watcher unavailable: %v", err)
	} else if err := watcher.Start(ctx); err != nil {
		logging.Errorf("config watcher failed to start: %v", err)
	}

	model := tui.NewModel(orch, orch.Events(), cfg.ThemeColor, cfg.SearchLimit, recent)
	if *query != "" {
		model = model.WithSearch(*query)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wikitea: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the article cache; cache failures are never fatal.
func openStore() *store.Store {
	path, err := config.DBPath()
	if err != nil {
		logging.Errorf("cache path: %v", err)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		logging.Errorf("cache dir: %v", err)
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		logging.Errorf("opening cache: %v", err)
		return nil
	}
	return st
}
