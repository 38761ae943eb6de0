package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.Caption.MaxWidth != 1000 {
		t.Errorf("expected max width 1000, got %d", cfg.Caption.MaxWidth)
	}
	if cfg.Caption.MaxPixels() != 50_000_000 {
		t.Errorf("expected 50MP decode budget, got %d", cfg.Caption.MaxPixels())
	}
	if cfg.Caption.Debounce() != 200*time.Millisecond {
		t.Errorf("expected 200ms debounce, got %s", cfg.Caption.Debounce())
	}
	d := cfg.Caption.Defaults
	if d.BandHeight != "40" || d.FontSize != "20" || d.FontColor != "#ffffff" || d.StrokeColor != "#000000" {
		t.Errorf("unexpected caption defaults: %+v", d)
	}
	if cfg.SMTP.Configured() {
		t.Error("SMTP should not be configured by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CAPTION_CONFIG", "")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("CAPTION_MAX_WIDTH", "not-a-number")
	t.Setenv("CAPTION_MAX_MEGAPIXELS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.MaxUploadBytes() != 5<<20 {
		t.Errorf("expected 5MB upload limit, got %d", cfg.MaxUploadBytes())
	}
	if !cfg.SMTP.Configured() {
		t.Error("expected SMTP to be configured")
	}
	if cfg.Caption.MaxWidth != 1000 {
		t.Errorf("invalid env value should keep default width, got %d", cfg.Caption.MaxWidth)
	}
	if cfg.Caption.MaxPixels() != 12_000_000 {
		t.Errorf("expected 12MP decode budget, got %d", cfg.Caption.MaxPixels())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "3000"
admin:
  username: ${TEST_ADMIN_USER}
caption:
  max_width: 800
  debounce_ms: 0
  defaults:
    band_height: "60"
    font_color: "#ffcc00"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAPTION_CONFIG", path)
	t.Setenv("TEST_ADMIN_USER", "curator")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.Admin.Username != "curator" {
		t.Errorf("expected expanded admin user, got %q", cfg.Admin.Username)
	}
	if cfg.Caption.MaxWidth != 800 {
		t.Errorf("expected max width 800, got %d", cfg.Caption.MaxWidth)
	}
	if cfg.Caption.DebounceMS != 200 {
		t.Errorf("zero debounce should fall back to 200, got %d", cfg.Caption.DebounceMS)
	}
	if cfg.Caption.Defaults.BandHeight != "60" || cfg.Caption.Defaults.FontColor != "#ffcc00" {
		t.Errorf("unexpected defaults: %+v", cfg.Caption.Defaults)
	}
	if cfg.Caption.Defaults.FontSize != "20" {
		t.Errorf("unset default should survive, got %q", cfg.Caption.Defaults.FontSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CAPTION_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("caption: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAPTION_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
