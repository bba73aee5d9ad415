package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/coderain/internal/config"
	"github.com/olivier-w/coderain/internal/store"
)

func TestOpenStoreNoStoreUsesMemory(t *testing.T) {
	cfg := config.Default()
	cfg.NoStore = true
	st, file := openStore(cfg)
	if file != nil {
		t.Fatal("expected no backing file")
	}
	if _, ok := st.(*store.Memory); !ok {
		t.Fatalf("expected memory store, got %T", st)
	}
}

func TestOpenStoreUsesPath(t *testing.T) {
	cfg := config.Default()
	cfg.StorePath = filepath.Join(t.TempDir(), "nested", "store.json")
	st, file := openStore(cfg)
	if file == nil {
		t.Fatal("expected file store")
	}
	if file.Path() != cfg.StorePath {
		t.Fatalf("expected path %q, got %q", cfg.StorePath, file.Path())
	}
	if err := st.Set("coderain-msg", "hi"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := os.Stat(cfg.StorePath); err != nil {
		t.Fatalf("expected store file written: %v", err)
	}
}

func TestOpenStoreFallsBackOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg := config.Default()
	cfg.StorePath = path
	st, file := openStore(cfg)
	if file != nil {
		t.Fatal("expected no backing file for unreadable store")
	}
	if _, ok := st.(*store.Memory); !ok {
		t.Fatalf("expected memory fallback, got %T", st)
	}
}

func TestWatchWithoutFileIsNoop(t *testing.T) {
	stop := watch(nil, func() { t.Fatal("unexpected notify") })
	stop()
}

func TestRunRejectsBadFlags(t *testing.T) {
	if err := run([]string{"-fps", "0"}); !errors.Is(err, config.ErrFPS) {
		t.Fatalf("expected ErrFPS, got %v", err)
	}
	if err := run([]string{"-list"}); err != nil {
		t.Fatalf("run(-list) error = %v", err)
	}
}
