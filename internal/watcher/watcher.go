package watcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dkasturi/docuchat/internal/extract"
	"github.com/dkasturi/docuchat/internal/ingest"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var logger *logger_i.Logger

// Watcher auto-ingests files dropped into a directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ingestSvc ingest.Service
}

func NewWatcher(ingestSvc ingest.Service) (*Watcher, error) {
	logger = logger_i.NewLogger("Watcher")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{fsWatcher: w, ingestSvc: ingestSvc}, nil
}

// Watch ingests every supported file created or written under dir until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	logger.Info("Watching directory for documents", "dir", dir)

	go func() {
		defer w.fsWatcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
					continue
				}
				w.ingestFile(ctx, event.Name)
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error", "error", err)
			}
		}
	}()

	return nil
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	name := filepath.Base(path)
	if extract.FormatFor(name) == extract.FormatErr {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Could not read dropped file", "path", path, "error", err)
		return
	}

	assetId, err := w.ingestSvc.ProcessUpload(ctx, name, data, ingest.ModeText)
	if err != nil {
		logger.Warn("Could not ingest dropped file", "path", path, "error", err)
		return
	}

	logger.Info("Ingested dropped file", "path", path, "assetId", assetId)
}
