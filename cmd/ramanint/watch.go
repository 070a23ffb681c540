package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-raman/internal/logger"
	"github.com/cwbudde/algo-raman/pipeline"
	"github.com/cwbudde/algo-raman/spectra/specfile"
)

// WatchCmd reruns the batch whenever a spectrum file below the inputs
// changes. Events are coalesced over Debounce.
type WatchCmd struct {
	MeasureFlags
	Debounce time.Duration `help:"Quiet period before rerunning" default:"500ms"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, &c.MeasureFlags)
	if err != nil {
		return err
	}
	if err := cfg.Params().Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(cfg, os.Stdout)
	rerun := func() {
		if _, err := s.run(ctx); err != nil {
			logger.Errorf("run: %v", err)
		}
	}
	rerun()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	dirs, err := watchDirs(cfg.Inputs, cfg.Recursive)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Infof("watching %d director(ies), ctrl-c to stop", len(dirs))

	timer := time.NewTimer(c.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if cfg.Recursive && ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						logger.Warnf("watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if !relevant(ev) {
				continue
			}
			logger.Debugf("change %s %s", ev.Op, ev.Name)
			timer.Reset(c.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watch: %v", err)
		case <-timer.C:
			s.driver.InvalidateAll()
			rerun()
		}
	}
}

// relevant reports whether ev touches a readable spectrum file.
func relevant(ev fsnotify.Event) bool {
	if !specfile.Supported(ev.Name) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// watchDirs lists the directories to watch for roots: directories
// themselves (and their subdirectories when recursive) and the parent of
// each file root.
func watchDirs(roots []string, recursive bool) ([]string, error) {
	if len(roots) == 0 {
		return nil, pipeline.ErrNoInput
	}
	seen := make(map[string]bool)
	var out []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		if !fi.IsDir() {
			add(filepath.Dir(root))
			continue
		}
		if !recursive {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
	}
	return out, nil
}
