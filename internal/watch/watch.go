package watch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher сообщает о изменённых файлах лампов и пресетов. События по одному
// файлу, пришедшие в пределах debounce, схлопываются в одно.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	files    map[string]bool // Явно указанные файлы; пусто, если следим только за директориями
	dirs     map[string]bool

	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New начинает следить за путями. Для файла отслеживается его директория,
// а события фильтруются по имени файла.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	added := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(p)
		dir := p
		info, err := os.Stat(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		if info.IsDir() {
			watcher.dirs[p] = true
		} else {
			watcher.files[p] = true
			dir = filepath.Dir(p)
		}
		if added[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		added[dir] = true
	}

	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.matches(name) {
				continue
			}
			pending[name] = true
			timer.Reset(w.debounce)
		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)
			for _, name := range names {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) matches(name string) bool {
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	return IsWatched(name)
}

// IsWatched сообщает, относится ли файл к лампам или пресетам
func IsWatched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
