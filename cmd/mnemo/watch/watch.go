// Package watchcmder provides the watch command for tailing filesystem
// activity under the vault root.
package watchcmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
	"github.com/mnemohq/mnemo/pkg/logger"
)

const watchLongDesc string = `Watch the vault for filesystem changes.

Logs every create, write, rename, and delete under the vault root and its
category directories until interrupted. Newly created category directories
are picked up automatically.

Useful when another process (an agent, an editor, a sync job) shares the
vault and you want to see its writes as they land.

Examples:
  mnemo watch
  mnemo watch --log-file ./vault-activity.jsonl`

const watchShortDesc string = "Watch the vault for changes"

type watchCommander struct {
	logFile string
}

func NewWatchCmd() *cobra.Command {
	cmder := &watchCommander{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: watchShortDesc,
		Long:  watchLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt)
		},
	}

	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append events as JSON lines to this file")

	return cmd
}

func (c *watchCommander) run(ctx context.Context, rt *cmdutil.Runtime) error {
	log := rt.Logger

	if c.logFile != "" {
		file, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer file.Close()

		log = logger.Multi(rt.Logger, logger.New(logger.WithJSON(true), logger.WithWriter(file)))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating vault watcher: %w", err)
	}
	defer watcher.Close()

	root := rt.Store.Root()
	if err := watchTree(watcher, root); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	log.Info("watching vault", "root", root)

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped", "uptime", cliui.FormatDuration(time.Since(started)))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			rel, err := filepath.Rel(root, event.Name)
			if err != nil {
				rel = event.Name
			}

			// Skip index churn and other dotfiles.
			if strings.HasPrefix(filepath.Base(rel), ".") {
				continue
			}

			logEvent(log, event, rel)

			// New category directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("watching new directory", "path", rel, "error", err)
					}
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "error", err)
		}
	}
}

// watchTree adds the root and every directory below it to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func logEvent(log *slog.Logger, event fsnotify.Event, rel string) {
	switch {
	case event.Op&fsnotify.Create != 0:
		log.Info("created", "path", rel)
	case event.Op&fsnotify.Write != 0:
		log.Info("written", "path", rel)
	case event.Op&fsnotify.Remove != 0:
		log.Info("removed", "path", rel)
	case event.Op&fsnotify.Rename != 0:
		log.Info("renamed", "path", rel)
	case event.Op&fsnotify.Chmod != 0:
		log.Debug("chmod", "path", rel)
	}
}
