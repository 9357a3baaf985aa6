package progress

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "progress.yaml")
	b := NewFileBackend(path)

	if _, ok, err := b.Get(DefaultKey); ok || err != nil {
		t.Fatalf("Get on missing file: ok=%v err=%v", ok, err)
	}

	if err := b.Set(DefaultKey, 0.207); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set("other", 0.5); err != nil {
		t.Fatalf("Set other: %v", err)
	}

	reopened := NewFileBackend(path)
	v, ok, err := reopened.Get(DefaultKey)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if v != 0.207 {
		t.Errorf("Get = %v, want 0.207", v)
	}
	if v, _, _ := reopened.Get("other"); v != 0.5 {
		t.Errorf("other = %v, want 0.5", v)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestFileBackendNonNumeric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	if err := os.WriteFile(path, []byte(DefaultKey+": soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewFileBackend(path)
	_, _, err := b.Get(DefaultKey)
	if !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("Get err = %v, want ErrNotNumeric", err)
	}

	s := Open(b, DefaultKey, nil)
	if s.Value() != 0 {
		t.Errorf("Value() = %v, want 0 for non-numeric storage", s.Value())
	}
}

func TestFileBackendUnquotedNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	if err := os.WriteFile(path, []byte(DefaultKey+": 0.35\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := NewFileBackend(path).Get(DefaultKey); err != nil || !ok || v != 0.35 {
		t.Errorf("Get = %v, %v, %v; want 0.35", v, ok, err)
	}
}

func TestFileBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	if err := os.WriteFile(path, []byte("{{{ not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewFileBackend(path)
	if _, _, err := b.Get(DefaultKey); err == nil {
		t.Error("expected parse error for corrupt document")
	}

	s := Open(b, DefaultKey, nil)
	if !s.Record(0.1) {
		t.Fatal("Record should advance")
	}
	if v, ok, err := b.Get(DefaultKey); err != nil || !ok || v != 0.1 {
		t.Errorf("after save: %v, %v, %v; want 0.1", v, ok, err)
	}
}

func TestFileBackendStoreEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	b := NewFileBackend(path)
	if err := b.Set(DefaultKey, 0.2); err != nil {
		t.Fatal(err)
	}

	s := Open(b, DefaultKey, nil)
	for i := 0; i < 10; i++ {
		s.Record(DefaultPolicy().Drag)
	}

	again := Open(NewFileBackend(path), DefaultKey, nil)
	if d := again.Value() - 0.207; d > 1e-9 || d < -1e-9 {
		t.Errorf("reloaded progress = %v, want 0.207", again.Value())
	}
}
