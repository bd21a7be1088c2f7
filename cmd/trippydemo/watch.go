// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// configWatcher reloads a configuration file when it changes on disk.
type configWatcher struct {
	w    *fsnotify.Watcher
	path string
	// Configs receives every successfully reloaded configuration. Only the
	// latest unread configuration is kept.
	Configs chan Config
	done    chan struct{}
}

// watchConfig starts watching path. The file's directory is watched, not
// the file, so that editors replacing the file by rename are noticed.
func watchConfig(path string) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &configWatcher{
		w:       w,
		path:    abs,
		Configs: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

func (cw *configWatcher) run() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := loadConfig(cw.path)
			if err != nil {
				slog.Warn("config reload failed", "path", cw.path, "err", err)
				continue
			}
			slog.Info("config reloaded", "path", cw.path)
			cw.publish(cfg)
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher", "err", err)
		}
	}
}

func (cw *configWatcher) publish(cfg Config) {
	for {
		select {
		case cw.Configs <- cfg:
			return
		default:
		}
		// Drop the stale configuration.
		select {
		case <-cw.Configs:
		default:
		}
	}
}

func (cw *configWatcher) Close() error {
	err := cw.w.Close()
	<-cw.done
	return err
}
