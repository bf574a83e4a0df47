package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

const recheckInterval = time.Second

// Watcher observes the config file and calls emit with the new theme
// color whenever it changes. File events trigger an immediate re-read;
// a periodic re-check covers editors that replace the file in ways the
// notifier misses.
type Watcher struct {
	watcher *fsnotify.Watcher
	emit    func(color string)
	last    string
}

func NewWatcher(emit func(color string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	return &Watcher{
		watcher: fsw,
		emit:    emit,
		last:    ThemeColor(),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer w.watcher.Close()

	ticker := time.NewTicker(recheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.check()
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	color := ThemeColor()
	if color != w.last {
		w.last = color
		w.emit(color)
	}
}
