package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/pathutil"
)

// settleDelay groups the bursts of events produced by a single save.
const settleDelay = 50 * time.Millisecond

// ItemsChangedMsg reports that the custom cards or a content pack changed.
type ItemsChangedMsg struct {
	Path string
}

type WatcherErrMsg struct {
	Err error
}

// CardWatcher watches the custom card sidecar and the content pack
// directory.
type CardWatcher struct {
	watcher  *fsnotify.Watcher
	dataFile string
	packsDir string
	log      *zap.Logger
	done     chan struct{}
	once     sync.Once
}

// NewCardWatcher starts watching dataFile and packsDir. Missing directories
// are created so that files added later are seen.
func NewCardWatcher(dataFile, packsDir string, log *zap.Logger) (*CardWatcher, error) {
	dataFile = pathutil.NormalizePath(dataFile)
	packsDir = pathutil.NormalizePath(packsDir)
	if dataFile == "" {
		return nil, errors.New("data file cannot be empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &CardWatcher{
		watcher:  w,
		dataFile: dataFile,
		packsDir: packsDir,
		log:      log,
		done:     make(chan struct{}),
	}

	dirs := []string{filepath.Dir(dataFile)}
	if packsDir != "" && packsDir != dirs[0] {
		dirs = append(dirs, packsDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = cw.Close()
			return nil, err
		}
		if err := w.Add(dir); err != nil {
			_ = cw.Close()
			return nil, err
		}
	}

	return cw, nil
}

// Start returns a command that blocks until the next relevant change. The
// receiver re-issues Start after handling the message.
func (w *CardWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				w.settle()
				w.log.Debug("card source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
				return ItemsChangedMsg{Path: event.Name}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					w.log.Warn("card watcher error", zap.Error(err))
					return WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

// settle drains the events that follow within settleDelay.
func (w *CardWatcher) settle() {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return
		case <-w.done:
			return
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
		}
	}
}

func (w *CardWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

func (w *CardWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := pathutil.NormalizePath(event.Name)
	if name == w.dataFile {
		return true
	}

	return w.packsDir != "" &&
		filepath.Dir(name) == w.packsDir &&
		content.IsPackFile(name)
}
