// Package logging routes the standard logger. A terminal frontend owns
// stdout, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	prefix     = "coderain"
	maxLogSize = 10 * 1024 * 1024
)

// Setup discards log output unless debug is set, in which case it appends to
// path, rotating an existing file larger than 10MB first. The returned file
// is nil when logging is off.
func Setup(debug bool, path string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
	}
	if err := rotate(path, time.Now()); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started pid=%d", os.Getpid())
	return f, nil
}

func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "-" + now.Format("20060102-150405") + ext
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
