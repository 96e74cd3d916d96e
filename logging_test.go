package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func restoreLog(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLog(t)
	t.Chdir(t.TempDir())

	if logFile := setupLogging(false); logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("logs directory should not be created without debug")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLog(t)
	t.Chdir(t.TempDir())

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	newLogger("[SESSION] ").Println("hello")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "[SESSION] hello") {
		t.Errorf("log file = %q, want prefixed message", data)
	}

	if out := log.Writer(); out == os.Stdout || out == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLog(t)
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotated := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log file is %d bytes, want < %d", info.Size(), maxLogSize)
	}
}

func TestRotateLog_FailureTruncates(t *testing.T) {
	restoreLog(t)
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	// A non-empty directory at the rotation target makes the rename fail.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	blocker := filepath.Join(logDir, "snake-20240301-120000.log")
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0755); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}
	if err := rotateLog(logPath, now); err == nil {
		t.Fatal("Expected rotation error")
	}

	// setupLogging uses the wall clock, so block that name too.
	for _, ts := range []time.Time{time.Now(), time.Now().Add(time.Second)} {
		name := filepath.Join(logDir, "snake-"+ts.Format("20060102-150405")+".log")
		if err := os.MkdirAll(filepath.Join(name, "keep"), 0755); err != nil {
			t.Fatalf("Failed to create blocker: %v", err)
		}
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) > maxLogSize {
		t.Errorf("log file is %d bytes, want truncated", len(data))
	}
	if !strings.Contains(string(data), "log rotation failed") {
		t.Errorf("log file = %q, want rotation failure logged", data)
	}
}
