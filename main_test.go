package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classic-snake/store"
)

func TestOpenStore(t *testing.T) {
	restoreLog(t)
	dir := t.TempDir()

	st := openStore(store.KindJSON, dir)
	defer st.Close()
	if _, ok := st.(*store.JSONStore); !ok {
		t.Errorf("openStore(json) = %T, want *store.JSONStore", st)
	}
}

func TestOpenStore_FallsBackToMemory(t *testing.T) {
	restoreLog(t)
	var buf bytes.Buffer
	log.SetOutput(&buf)

	// A regular file where the data directory should be.
	dataDir := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(dataDir, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, kind := range []string{store.KindJSON, store.KindSQLite, "redis"} {
		buf.Reset()
		st := openStore(kind, dataDir)
		if _, ok := st.(*store.MemoryStore); !ok {
			t.Errorf("openStore(%q) = %T, want *store.MemoryStore", kind, st)
		}
		if err := st.SaveBestScore(5); err != nil {
			t.Errorf("openStore(%q) fallback SaveBestScore: %v", kind, err)
		}
		if !strings.Contains(buf.String(), "keeping scores in memory") {
			t.Errorf("openStore(%q) log = %q, want fallback message", kind, buf.String())
		}
		st.Close()
	}
}
