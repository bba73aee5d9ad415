package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := f.Get("coderain-msg"); ok {
		t.Fatal("expected empty store")
	}
}

func TestSetGetDeleteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := f.Set("coderain-msg", "follow the white rabbit"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if v, ok := reopened.Get("coderain-msg"); !ok || v != "follow the white rabbit" {
		t.Fatalf("expected persisted value, got %q (ok=%v)", v, ok)
	}

	if err := reopened.Delete("coderain-msg"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if _, ok := f.Get("coderain-msg"); ok {
		t.Fatal("expected entry removed after reload")
	}
}

func TestReloadDuringSetsEndsWithLastValue(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 50 {
			if err := f.Set("coderain-msg", strconv.Itoa(i)); err != nil {
				t.Errorf("Set() error = %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			if err := f.Reload(); err != nil {
				t.Errorf("Reload() error = %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if v, _ := f.Get("coderain-msg"); v != "49" {
		t.Fatalf("expected last value %q, got %q", "49", v)
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := Open(filepath.Join(dir, "store.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, v := range []string{"a", "ab", "abc"} {
		if err := f.Set("k", v); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only store.json, got %d entries", len(entries))
	}
}

func TestWatchSeesWritesFromAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	changed := make(chan struct{}, 16)
	w, err := a.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := b.Set("coderain-msg", "knock knock"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-changed:
			if v, _ := a.Get("coderain-msg"); v == "knock knock" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for watched reload")
		}
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := m.Get("k"); !ok || v != "v" {
		t.Fatalf("expected v, got %q", v)
	}
	if err := m.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := m.Get("k"); ok {
		t.Fatal("expected key removed")
	}
}
