package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Zachdehooge/loop-map/internal/app"
)

// localSources returns the dataset paths that can be watched; URLs are skipped
func localSources(opts *options) []string {
	var paths []string
	for _, src := range []string{opts.cfg.Sources.Roads, opts.cfg.Sources.Junctions, opts.cfg.Sources.Links} {
		if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			continue
		}
		paths = append(paths, filepath.Clean(src))
	}
	return paths
}

// runWatchMode regenerates the map whenever a local dataset is written
func runWatchMode(cmd *cobra.Command, opts *options) error {
	paths := localSources(opts)
	if len(paths) == 0 {
		return fmt.Errorf("no local datasets to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace files, so watch the directories and filter by name.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		watched[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	cmd.Println(fmt.Sprintf("Watch mode activated. Watching %d datasets. Press Ctrl+C to stop.", len(paths)))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Printf("[watch] %s changed, regenerating", event.Name)
			session := app.Open(context.Background(), opts.cfg)
			if err := generatePage(cmd, opts, session); err != nil {
				cmd.PrintErrln(fmt.Errorf("update failed: %w", err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[watch] watcher error: %v", err)
		}
	}
}
