package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// eventBuffer is the capacity of the Events channel.
const eventBuffer = 64

// Tailer follows the newest journal file in a directory and emits parsed
// events. Existing lines of the newest journal are replayed first so the
// consumer learns where the player is.
type Tailer struct {
	dir    string
	logger zerolog.Logger
	events chan Event

	file    string
	offset  int64
	partial []byte
}

// NewTailer returns a tailer for dir.
func NewTailer(dir string, logger zerolog.Logger) *Tailer {
	return &Tailer{
		dir:    dir,
		logger: logger.With().Str("component", "journal").Str("dir", dir).Logger(),
		events: make(chan Event, eventBuffer),
	}
}

// Events returns the channel events are delivered on. It is closed when
// Run returns.
func (t *Tailer) Events() <-chan Event { return t.events }

// Dir returns the journal directory.
func (t *Tailer) Dir() string { return t.dir }

// Run replays the newest journal and follows the directory until ctx is
// done.
func (t *Tailer) Run(ctx context.Context) error {
	defer close(t.events)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating journal watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(t.dir); err != nil {
		return fmt.Errorf("watching %s: %w", t.dir, err)
	}

	if newest := t.newest(); newest != "" {
		t.switchTo(newest)
		if err = t.drain(ctx); err != nil {
			return stopped(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if err = t.handle(ctx, ev); err != nil {
				return stopped(err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.logger.Warn().Err(werr).Msg("journal watcher error")
		}
	}
}

func (t *Tailer) handle(ctx context.Context, ev fsnotify.Event) error {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return nil
	}
	name := filepath.Clean(ev.Name)
	if ok, _ := filepath.Match(journalGlob, filepath.Base(name)); !ok {
		return nil
	}
	if name != t.file {
		if t.file != "" && filepath.Base(name) < filepath.Base(t.file) {
			return nil
		}
		// Finish the old journal before moving on.
		if t.file != "" {
			if err := t.drain(ctx); err != nil {
				return err
			}
		}
		t.switchTo(name)
	}
	return t.drain(ctx)
}

func (t *Tailer) newest() string {
	matches, err := filepath.Glob(filepath.Join(t.dir, journalGlob))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return filepath.Clean(matches[len(matches)-1])
}

func (t *Tailer) switchTo(file string) {
	t.logger.Debug().Str("file", filepath.Base(file)).Msg("following journal")
	t.file = file
	t.offset = 0
	t.partial = nil
}

// drain reads everything appended to the current journal since the last
// call and emits one event per complete line.
func (t *Tailer) drain(ctx context.Context) error {
	f, err := os.Open(t.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		t.logger.Warn().Err(err).Msg("failed to open journal")
		return nil
	}
	defer f.Close()

	if _, err = f.Seek(t.offset, io.SeekStart); err != nil {
		t.logger.Warn().Err(err).Msg("failed to seek journal")
		return nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.logger.Warn().Err(err).Msg("failed to read journal")
		return nil
	}
	t.offset += int64(len(data))

	data = append(t.partial, data...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSpace(data[:i])
		data = data[i+1:]
		if len(line) == 0 {
			continue
		}
		if err = t.emit(ctx, line); err != nil {
			return err
		}
	}
	t.partial = append([]byte(nil), data...)
	return nil
}

func (t *Tailer) emit(ctx context.Context, line []byte) error {
	ev, err := Parse(line)
	if err != nil {
		t.logger.Warn().Err(err).Str("line", string(line)).Msg("skipping malformed journal line")
		return nil
	}
	if ev.Name == EventNavRoute {
		dest, rerr := LoadRouteDestination(NavRouteFile(t.dir))
		if rerr != nil {
			t.logger.Warn().Err(rerr).Msg("failed to read nav route")
		}
		ev.RouteDestination = dest
	}

	select {
	case t.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stopped maps cancellation to a clean return.
func stopped(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
