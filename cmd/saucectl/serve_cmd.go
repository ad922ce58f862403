package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/textmode-tools/gosauce/internal/app"
	gallerysss "github.com/textmode-tools/gosauce/internal/gallery/ssh"
	gallerytelnet "github.com/textmode-tools/gosauce/internal/gallery/telnet"
)

var serveCmd = &cobra.Command{
	Use:              "serve",
	Short:            "Start the telnet/SSH gallery servers",
	PersistentPreRun: bootApp,
	Run:              runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	restartChan := make(chan struct{}, 1)
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	for {
		var watcher *fsnotify.Watcher
		if app.Config.HotReload {
			var err error
			watcher, err = fsnotify.NewWatcher()
			if err != nil {
				app.Logger.Error("failed to create config watcher", "err", err)
			} else {
				for _, file := range app.Config.LoadedFiles {
					if err := watcher.Add(file); err != nil {
						app.Logger.Error("failed to watch config file", "file", file, "err", err)
					}
				}
				go watchConfig(watcher, restartChan)
			}
		}

		var wg sync.WaitGroup
		var telnetServer *gallerytelnet.Server
		var sshServer *gallerysss.Server

		telnetEnabled := app.Config.Listeners.Telnet.Enabled
		sshEnabled := app.Config.Listeners.SSH.Enabled

		if !telnetEnabled && !sshEnabled {
			app.Logger.Warn("no listeners enabled")
			select {
			case <-stopChan:
				closeWatcher(watcher)
				return
			case <-restartChan:
				closeWatcher(watcher)
				_ = app.Boot(cfgFile, false)
				continue
			}
		}

		if telnetEnabled {
			wg.Add(1)
			telnetServer = gallerytelnet.NewServer(app.Config.Listeners.Telnet.Port, app.Catalog, app.Logger)
			go func() {
				defer wg.Done()
				if err := telnetServer.ListenAndServe(); err != nil {
					app.Logger.Error("telnet gallery stopped", "err", err)
				}
			}()
		}

		if sshEnabled {
			wg.Add(1)
			sshServer = gallerysss.NewServer(app.Config.Listeners.SSH.Port, app.Config.Listeners.SSH.KeyFile, app.Catalog, app.Logger)
			go func() {
				defer wg.Done()
				if err := sshServer.ListenAndServe(); err != nil {
					app.Logger.Error("SSH gallery stopped", "err", err)
				}
			}()
		}

		select {
		case <-stopChan:
			app.Logger.Info("shutting down")
			stopServers(telnetServer, sshServer)
			closeWatcher(watcher)
			wg.Wait()
			return

		case <-restartChan:
			stopServers(telnetServer, sshServer)
			closeWatcher(watcher)
			wg.Wait()

			if err := app.Boot(cfgFile, false); err != nil {
				app.Logger.Error("failed to reload config", "err", err)
			}
		}
	}
}

func watchConfig(watcher *fsnotify.Watcher, restartChan chan<- struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if !app.Config.HotReload {
					continue
				}
				relPath := event.Name
				if cwd, err := os.Getwd(); err == nil {
					if rel, err := filepath.Rel(cwd, event.Name); err == nil {
						relPath = rel
					}
				}
				app.Logger.Info("config file modified, reloading", "file", relPath)
				select {
				case restartChan <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			app.Logger.Error("config watcher error", "err", err)
		}
	}
}

func stopServers(telnetServer *gallerytelnet.Server, sshServer *gallerysss.Server) {
	if telnetServer != nil {
		telnetServer.Stop()
	}
	if sshServer != nil {
		sshServer.Stop()
	}
}

func closeWatcher(watcher *fsnotify.Watcher) {
	if watcher != nil {
		watcher.Close()
	}
}
