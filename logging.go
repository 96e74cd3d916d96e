package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "snake.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends the standard logger to logs/snake.log when debug is
// set and discards it otherwise. Nothing is ever written to stdout or
// stderr, which the terminal frontend owns. The returned file, if any, must
// be closed by the caller.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(logDir, logFileName)
	rotateErr := rotateLog(path, time.Now())

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if rotateErr != nil {
		// Keep the file bounded when it cannot be moved aside.
		if err := f.Truncate(0); err != nil {
			log.Printf("log rotation failed: %v; truncate failed: %v", rotateErr, err)
		} else {
			log.Printf("log rotation failed, truncated %s: %v", path, rotateErr)
		}
	}
	return f
}

// rotateLog renames path to a timestamped file once it exceeds maxLogSize.
func rotateLog(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	rotated := filepath.Join(filepath.Dir(path), fmt.Sprintf("snake-%s.log", now.Format("20060102-150405")))
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate %s: %w", path, err)
	}
	return nil
}

// newLogger returns a component logger sharing the standard logger's
// destination.
func newLogger(prefix string) *log.Logger {
	return log.New(log.Writer(), prefix, log.Flags())
}
