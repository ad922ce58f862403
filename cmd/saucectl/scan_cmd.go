package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/app"
	"github.com/textmode-tools/gosauce/internal/catalog"
)

var watchDir bool

var scanCmd = &cobra.Command{
	Use:              "scan <dir>",
	Short:            "Walk a directory, decode SAUCE records, and upsert them into the catalog",
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: bootApp,
	Run:              runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&watchDir, "watch", false, "keep scanning on file changes")
}

func bootApp(cmd *cobra.Command, args []string) {
	if err := app.Boot(cfgFile, false); err != nil {
		log.Fatalf("boot failed: %v", err)
	}
}

func runScan(cmd *cobra.Command, args []string) {
	root := args[0]

	if err := scanDir(root); err != nil {
		log.Fatalf("scan failed: %v", err)
	}

	if !watchDir {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, root); err != nil {
		log.Fatalf("failed to watch %s: %v", root, err)
	}

	app.Logger.Info("watching for changes", "dir", root)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := scanFile(event.Name); err != nil {
					app.Logger.Warn("rescan failed", "path", event.Name, "err", err)
				}
			}
			if event.Op&fsnotify.Remove != 0 {
				_ = app.Catalog.RemoveByPath(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			app.Logger.Error("watcher error", "err", err)
		}
	}
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func scanDir(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if scanErr := scanFile(path); scanErr != nil {
			app.Logger.Warn("skipping file during scan", "path", path, "err", scanErr)
		}
		return nil
	})
}

func scanFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	block, err := sauce.ReadSauce(file)
	if err != nil {
		if errors.Is(err, sauce.ErrNoSauce) {
			return nil
		}
		return err
	}

	info, err := file.Stat()
	if err != nil {
		return err
	}

	entry := &catalog.CatalogEntry{
		Path:         path,
		Title:        block.Title,
		Author:       block.Author,
		Group:        block.Group,
		DataType:     block.DataTypeID(),
		FileType:     strconv.Itoa(block.Media.FileType),
		MediaName:    block.MediaTypeID(),
		CommentCount: block.CommentLines(),
		FileSize:     info.Size(),
	}
	if block.Date != nil {
		entry.Date = fmt.Sprintf("%04d-%02d-%02d", block.Date.Year, block.Date.Month, block.Date.Day)
	}

	return app.Catalog.UpsertEntry(entry)
}
