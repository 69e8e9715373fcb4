package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const (
	logFilePrefix = "threadline-"
	// Fixed width so lexical order is chronological.
	logFileStamp = "20060102T150405.000"
)

// OpenLogOutput tees console into a fresh file under dir, keeping at most
// maxFiles log files including the new one. The returned closer closes
// the file.
func OpenLogOutput(console io.Writer, dir string, maxFiles int) (io.Writer, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := pruneLogs(dir, maxFiles-1); err != nil {
		fmt.Fprintf(os.Stderr, "warning: pruning old logs: %v\n", err)
	}

	name := filepath.Join(dir, logFilePrefix+time.Now().UTC().Format(logFileStamp)+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return io.MultiWriter(console, f), f.Close, nil
}

// pruneLogs deletes the oldest log files until at most keep remain.
func pruneLogs(dir string, keep int) error {
	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	if err != nil {
		return err
	}
	keep = max(keep, 0)
	if len(files) <= keep {
		return nil
	}
	slices.Sort(files)

	var errs []error
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewLogger builds the JSON logger used by the server and tools.
// Debug enables debug-level records such as per-cascade row counts.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
