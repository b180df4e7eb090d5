// Package filewatch turns file system events for one file into change
// notifications.
package filewatch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"

	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher signals when the content of a single file changes. The parent
// directory is watched so editors that replace the file on save are seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	target  string
	digest  []byte
	changes chan struct{}
}

// New starts watching path.
func New(path string) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.IOFailed, "resolve %s failed: %v", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.IOFailed, "create file watcher failed: %v", err)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		_ = fsw.Close()
		return nil, appErr.Wrapf(err, appErr.IOFailed, "watch %s failed: %v", filepath.Dir(target), err)
	}
	return &Watcher{
		fs:      fsw,
		target:  target,
		digest:  digestOf(target),
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes delivers one value per detected change. Pending values are not
// queued beyond one, so a burst of saves collapses. The channel is closed when
// Run returns.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards events until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer func() { _ = w.fs.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			digest := digestOf(w.target)
			if digest == nil || bytes.Equal(digest, w.digest) {
				continue
			}
			w.digest = digest
			logger.Debug(ctx, "solution file changed", zap.String("file", w.target), zap.String("op", event.Op.String()))
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return appErr.Wrapf(err, appErr.IOFailed, "file watcher failed: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func digestOf(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:]
}
