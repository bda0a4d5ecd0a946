package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// FileName is the active log file inside the log directory
	FileName = "cutin-killer.log"

	// MaxSize is the size above which the active file is rotated at startup
	MaxSize = 10 * 1024 * 1024
)

// Options selects where and how much to log
// The terminal is owned by the renderer, so nothing is written to stdout unless Console is set
type Options struct {
	Enabled bool
	Dir     string
	Level   string
	Console io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the process logger and a closer for its file
// Disabled logging yields zerolog.Nop
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	if !opts.Enabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(opts.Dir, FileName)
	if err := rotate(path, time.Now()); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	var out io.Writer = file
	if opts.Console != nil {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.TimeOnly})
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, file, nil
}

// ParseLevel maps a config string onto a zerolog level, empty means info
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// rotate moves an oversized log aside under a timestamped name
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= MaxSize {
		return nil
	}

	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), now.Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
