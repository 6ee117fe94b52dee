package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/util"
)

// FileStore keeps the event log as one JSON record per line. Appends are
// O(1); Delete and Retype rewrite the file atomically through a temp
// file. Good for a single household log, which stays small.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or prepares to create) a line-delimited log file.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Search(ctx context.Context, startMs, endMs int64) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]event.Event, 0, len(all))
	for _, e := range all {
		if e.Timestamp >= startMs && e.Timestamp < endMs {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *FileStore) Add(ctx context.Context, e event.Event) error {
	if err := event.Check(e); err != nil {
		return err
	}
	raw, err := encodeWire(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, timestampMs int64) (int, error) {
	return s.rewrite(ctx, func(e event.Event) (event.Event, bool) {
		if e.Timestamp == timestampMs {
			return event.Event{}, false
		}
		return e, true
	})
}

func (s *FileStore) Retype(ctx context.Context, timestampMs int64, kind event.Kind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("malformed event: unknown kind %q", kind)
	}
	changed := 0
	_, err := s.rewrite(ctx, func(e event.Event) (event.Event, bool) {
		if e.Timestamp == timestampMs {
			e.Kind = kind
			changed++
		}
		return e, true
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func (s *FileStore) Close() error {
	return nil
}

// readAll loads every decodable event. A missing file is an empty log.
func (s *FileStore) readAll(ctx context.Context) ([]event.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var out []event.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if e, ok := decodeWire(line); ok {
			out = append(out, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return out, nil
}

// rewrite streams the log through keep and atomically replaces the file.
// Returns how many events were dropped.
func (s *FileStore) rewrite(ctx context.Context, keep func(event.Event) (event.Event, bool)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll(ctx)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".babycheck-*.jsonl")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp log: %w", err)
	}
	defer os.Remove(tmp.Name())

	dropped := 0
	w := bufio.NewWriter(tmp)
	for _, e := range all {
		next, ok := keep(e)
		if !ok {
			dropped++
			continue
		}
		raw, err := encodeWire(next)
		if err != nil {
			tmp.Close()
			return 0, fmt.Errorf("failed to encode event: %w", err)
		}
		if _, err := w.Write(append(raw, '\n')); err != nil {
			tmp.Close()
			return 0, fmt.Errorf("failed to write temp log: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to flush temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp log: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return 0, fmt.Errorf("failed to replace log file: %w", err)
	}
	util.LogDebugf("rewrote log file %s, %d event(s) dropped", s.path, dropped)
	return dropped, nil
}
