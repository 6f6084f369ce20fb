package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTheme(t *testing.T, path, name string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("name: "+name+"\n"), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}
}

func TestWatch_EmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeTheme(t, path, "initial")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	writeTheme(t, path, "edited")

	select {
	case got := <-w.Themes():
		if got.Name != "edited" {
			t.Errorf("reloaded theme name = %q, want %q", got.Name, "edited")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for theme reload")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeTheme(t, path, "initial")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	writeTheme(t, filepath.Join(dir, "other.yaml"), "noise")

	select {
	case got := <-w.Themes():
		t.Fatalf("unexpected reload %q from sibling file write", got.Name)
	case <-time.After(300 * time.Millisecond):
	}
}

// A save implemented as truncate-then-write must reload the completed file,
// not the half-written intermediate state.
func TestWatch_BurstReloadsFinalContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeTheme(t, path, "initial")

	w, err := WatchWithDebounceDelay(path, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	writeTheme(t, path, "final")

	select {
	case got := <-w.Themes():
		if got.Name != "final" {
			t.Errorf("reloaded theme name = %q, want %q", got.Name, "final")
		}
	case err := <-w.Errors():
		t.Fatalf("reload saw an intermediate write: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for theme reload")
	}
}

func TestWatch_MalformedEditEmitsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeTheme(t, path, "initial")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	select {
	case err := <-w.Errors():
		if err == nil {
			t.Fatal("nil error from Errors()")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for parse error")
	}
}

func TestWatch_EmptyPath(t *testing.T) {
	if _, err := Watch(""); err == nil {
		t.Fatal("Watch(\"\") succeeded, want error")
	}
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	writeTheme(t, path, "initial")

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	_ = w.Close()
}
