package opengl

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reloads external shader files on change, for iterating
// on shaders without restarting. The reload callback runs on the
// watcher goroutine; callers that need the GL thread should queue the
// sources and apply them from the frame loop.
type ShaderWatcher struct {
	watcher  *fsnotify.Watcher
	vertPath string
	fragPath string
	onChange func(vertexSource, fragmentSource string)
	done     chan struct{}
}

// NewShaderWatcher watches the two shader files and invokes onChange
// with both freshly-read sources whenever either is written.
func NewShaderWatcher(vertPath, fragPath string, onChange func(vertexSource, fragmentSource string)) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	// Watch the directories: editors often replace files rather than
	// write in place, which drops plain file watches.
	dirs := map[string]bool{}
	for _, p := range []string{vertPath, fragPath} {
		dir := filepath.Dir(p)
		if !dirs[dir] {
			dirs[dir] = true
			if err := w.Add(dir); err != nil {
				w.Close()
				return nil, fmt.Errorf("shader watcher: %w", err)
			}
		}
	}

	sw := &ShaderWatcher{
		watcher:  w,
		vertPath: vertPath,
		fragPath: fragPath,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !sw.matches(ev.Name) {
				continue
			}
			// Debounce bursts of events from a single save.
			pending = time.After(100 * time.Millisecond)
		case <-pending:
			pending = nil
			sw.reload()
		case _, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
		case <-sw.done:
			return
		}
	}
}

func (sw *ShaderWatcher) matches(name string) bool {
	return filepath.Clean(name) == filepath.Clean(sw.vertPath) ||
		filepath.Clean(name) == filepath.Clean(sw.fragPath)
}

func (sw *ShaderWatcher) reload() {
	vert, err := os.ReadFile(sw.vertPath)
	if err != nil {
		return
	}
	frag, err := os.ReadFile(sw.fragPath)
	if err != nil {
		return
	}
	sw.onChange(string(vert), string(frag))
}

// Close stops watching.
func (sw *ShaderWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}
