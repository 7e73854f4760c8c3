package region

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// defaultDebounce coalesces the write bursts editors and atomic-save tools
// produce for a single logical file change.
const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a Registry when its pack file changes on disk. A reload
// that fails to parse keeps the previous snapshot.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	registry *Registry
	path     string
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a Watcher for the pack file at path, updating registry
// on changes. The watch is not started until Start is called.
func NewWatcher(path string, registry *Registry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		registry: registry,
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the pack file's directory. Watching the directory
// rather than the file itself survives rename-based atomic saves. Start is
// non-blocking and idempotent.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	go w.loop(ctx)
	return nil
}

// Stop terminates the watch and waits for the event loop to exit. Stopping
// a watcher that never started just releases its file handles.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.FromContext(ctx)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			w.reload(log)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Str("component", "region").Err(err).Msg("region pack watcher error")
		}
	}
}

// reload parses the pack file and publishes it. A malformed file leaves the
// previous snapshot in place.
func (w *Watcher) reload(log zerolog.Logger) {
	snap, err := LoadSnapshot(w.path)
	if err != nil {
		log.Warn().Str("component", "region").Str("path", w.path).Err(err).
			Msg("region pack reload failed, keeping previous snapshot")
		return
	}
	w.registry.Replace(snap)
	log.Info().Str("component", "region").Str("path", w.path).
		Int("regions", len(snap.packs)).Msg("region packs reloaded")
}
