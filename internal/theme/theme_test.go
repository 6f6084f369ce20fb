package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	def := Default()
	if def.Name != "dracula" {
		t.Errorf("Name = %q, want %q", def.Name, "dracula")
	}
	if def.BorderFocused == "" || def.Text == "" {
		t.Error("default theme has empty colors")
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	content := `name: nord
border: "#3b4252"
border_focused: "#88c0d0"
border_filled: "#a3be8c"
text: "#eceff4"
placeholder: "#4c566a"
accent: "#81a1c1"
success: "#a3be8c"
error: "#bf616a"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "nord" {
		t.Errorf("Name = %q, want %q", got.Name, "nord")
	}
	if got.BorderFocused != "#88c0d0" {
		t.Errorf("BorderFocused = %q, want %q", got.BorderFocused, "#88c0d0")
	}
}

func TestLoad_PartialFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("border_focused: \"#ff0000\"\n"), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.BorderFocused != "#ff0000" {
		t.Errorf("BorderFocused = %q, want override", got.BorderFocused)
	}
	if got.Text != Default().Text {
		t.Errorf("Text = %q, want default %q", got.Text, Default().Text)
	}
	if got.Name != "custom" {
		t.Errorf("Name = %q, want %q", got.Name, "custom")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() of missing file succeeded, want error")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0600); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() of malformed file succeeded, want error")
	}
}

func TestOptionsFromEnv_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	opts := OptionsFromEnv()
	if !opts.NoColor {
		t.Error("expected NoColor when NO_COLOR is set")
	}
}

func TestOptionsFromEnv_DumbTerm(t *testing.T) {
	unsetEnv(t, "NO_COLOR")
	t.Setenv("TERM", "dumb")
	opts := OptionsFromEnv()
	if !opts.NoColor {
		t.Error("expected NoColor when TERM=dumb")
	}
}

func TestOptionsFromEnv_ReducedMotion(t *testing.T) {
	unsetEnv(t, "REDUCED_MOTION")
	unsetEnv(t, "REDUCE_MOTION")
	t.Setenv("OTPBOX_REDUCED_MOTION", "true")
	opts := OptionsFromEnv()
	if !opts.ReduceMotion {
		t.Error("expected ReduceMotion when OTPBOX_REDUCED_MOTION is set")
	}
}

func TestOptionsFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, "NO_COLOR")
	unsetEnv(t, "OTPBOX_REDUCED_MOTION")
	unsetEnv(t, "REDUCED_MOTION")
	unsetEnv(t, "REDUCE_MOTION")
	t.Setenv("TERM", "xterm-256color")

	opts := OptionsFromEnv()
	if opts.NoColor || opts.ReduceMotion {
		t.Errorf("opts = %+v, want zero value", opts)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	orig, ok := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, orig)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
