package staging

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Options controls the staging directory watcher.
type Options struct {
	Dir      string
	Patterns []string // e.g. []string{"*.pdf", "*.docx"}
	Logger   *log.Logger
}

// Watcher keeps an up-to-date inventory of the staging directory. Files
// dropped there show up as attachment candidates in the creation form
// without restarting the console.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]model.PendingFile // keyed by absolute path

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher scans the directory once and starts watching it for
// changes. Close must be called to release the inotify handle.
func NewWatcher(opts Options) (*Watcher, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[staging] ", log.LstdFlags)
	}
	if len(opts.Patterns) == 0 {
		opts.Patterns = []string{"*.pdf", "*.docx", "*.doc", "*.xlsx", "*.png", "*.jpg"}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fw.Add(opts.Dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch add: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		watcher: fw,
		files:   make(map[string]model.PendingFile),
		done:    make(chan struct{}),
	}
	if err := w.scanOnce(); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.watchLoop(ctx)

	opts.Logger.Printf("Watching staging directory: %s (patterns: %s)", opts.Dir, strings.Join(opts.Patterns, ","))
	return w, nil
}

// Close stops the watch loop and releases the watcher.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.watcher.Close()
}

// Files returns the current attachment candidates sorted by name.
func (w *Watcher) Files() []model.PendingFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.PendingFile, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (w *Watcher) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, pat := range w.opts.Patterns {
		p := strings.TrimSpace(strings.ToLower(pat))
		if ok, _ := filepath.Match(p, lower); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) scanOnce() error {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !w.matches(e.Name()) {
			continue
		}
		w.track(filepath.Join(w.opts.Dir, e.Name()))
	}
	return nil
}

func (w *Watcher) track(path string) {
	st, err := os.Stat(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.files[path] = model.PendingFile{
		Name: filepath.Base(path),
		Size: st.Size(),
		Path: path,
	}
	w.mu.Unlock()
}

func (w *Watcher) untrack(path string) {
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.track(ev.Name)
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.untrack(ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.opts.Logger.Printf("watch error: %v", err)
			}
		}
	}
}
