package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// baseHistory is the base name of the history file in the cache directory.
const baseHistory = "history.utf8"

// maxHistory bounds the number of entries kept.
const maxHistory = 1000

var modePrefix = map[inputMode]string{modeEval: "E:", modeCtrl: "C:"}

// Entry is one history line and the mode it was entered in.
type Entry struct {
	Line string
	Mode inputMode
}

// History is an input history persisted to a file, one entry per line.
//
// A line is stored once per mode; entering it again moves it to the end.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []Entry
}

// NewHistory returns an empty History backed by the file at path. An empty
// path keeps the history in memory only.
func NewHistory(path string) *History { return &History{path: path} }

// Load replaces the entries with those read from the history file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return ErrHistory.With(slog.String("path", h.path)).Wrap(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Text()); ok {
			h.entries = append(h.entries, e)
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrHistory.With(slog.String("path", h.path)).Wrap(err)
	}

	return nil
}

func parseEntry(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}

	for mode, prefix := range modePrefix {
		if s, ok := strings.CutPrefix(line, prefix); ok {
			return Entry{Line: s, Mode: mode}, s != ""
		}
	}

	return Entry{Line: line, Mode: modeEval}, true
}

func (e Entry) String() string { return modePrefix[e.Mode] + e.Line }

// Add appends line in mode and persists the history.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	e := Entry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	if i := slices.Index(h.entries, e); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		h.entries = append(h.entries, e)

		return h.rewrite()
	}

	h.entries = append(h.entries, e)

	if len(h.entries) > maxHistory {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-maxHistory)

		return h.rewrite()
	}

	return h.append(e)
}

// Entry returns the entry at index i; index 0 is the oldest.
func (h *History) Entry(i int) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return Entry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of every entry, oldest first.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// append writes e to the end of the history file. Must be called with h.mu
// held.
func (h *History) append(e Entry) error {
	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return ErrHistory.With(slog.String("path", h.path)).Wrap(err)
	}
	defer file.Close()

	if _, err := file.WriteString(e.String() + "\n"); err != nil {
		return ErrHistory.With(slog.String("path", h.path)).Wrap(err)
	}

	return nil
}

// rewrite replaces the history file with the current entries. Must be called
// with h.mu held.
func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.String() + "\n")
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return ErrHistory.With(slog.String("path", h.path)).Wrap(err)
	}

	return nil
}
