package cargo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// defaultDebounce coalesces the burst of write events editors and the game
// produce for a single save.
const defaultDebounce = 200 * time.Millisecond

// cargoFile is the on-disk carrier cargo snapshot.
type cargoFile struct {
	CallSign string      `json:"callsign"`
	Cargo    []cargoItem `json:"cargo"`
}

type cargoItem struct {
	Commodity string `json:"commodity"`
	Quantity  int    `json:"quantity"`
}

// FileSource is a Source backed by a JSON cargo snapshot file that is re-read
// whenever it changes on disk.
type FileSource struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger

	mu    sync.RWMutex
	owner string
	tally Tally
	known bool

	subs subscribers

	timerMu sync.Mutex
	timer   *time.Timer
}

// NewFileSource returns a FileSource for path. Call Load for the initial read
// and Watch to follow changes.
func NewFileSource(path string, logger zerolog.Logger) *FileSource {
	return &FileSource{
		path:     path,
		debounce: defaultDebounce,
		logger:   logger.With().Str("component", "cargo").Str("file", path).Logger(),
		tally:    Tally{},
	}
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads the file. On error the last good snapshot is kept.
func (s *FileSource) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading cargo file: %w", err)
	}

	var f cargoFile
	if err = json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing cargo file: %w", err)
	}

	tally := make(Tally, len(f.Cargo))
	for _, item := range f.Cargo {
		if item.Commodity == "" {
			continue
		}
		tally[Key{Commodity: item.Commodity}] += item.Quantity
	}

	s.mu.Lock()
	s.owner = f.CallSign
	s.tally = tally
	s.known = true
	s.mu.Unlock()

	s.logger.Debug().Int("positions", len(tally)).Str("callsign", f.CallSign).Msg("cargo loaded")
	return nil
}

// Inventory implements Source. Nothing is reported before the first
// successful Load.
func (s *FileSource) Inventory(fn func(owner string, tally Tally) bool) {
	s.mu.RLock()
	owner, tally, known := s.owner, s.tally, s.known
	s.mu.RUnlock()

	if !known {
		return
	}
	fn(owner, tally)
}

// Subscribe implements Source. Handlers run on the watcher goroutine.
func (s *FileSource) Subscribe(fn func()) func() {
	return s.subs.add(fn)
}

// Watch follows the cargo file until ctx is done. The parent directory is
// watched so atomic rename-over saves are seen too.
func (s *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating cargo watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go s.loop(ctx, watcher)
	return nil
}

func (s *FileSource) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			s.stopTimer()
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				s.schedule()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(werr).Msg("cargo watcher error")
		}
	}
}

func (s *FileSource) schedule() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.reload)
}

func (s *FileSource) stopTimer() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *FileSource) reload() {
	if err := s.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Msg("cargo file vanished, keeping last snapshot")
			return
		}
		s.logger.Error().Err(err).Msg("failed to reload cargo, keeping last snapshot")
		return
	}
	s.subs.notify()
}
