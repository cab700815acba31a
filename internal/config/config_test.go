package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
plugins:
  - sleepy
log:
  level: debug
  file: default
history:
  postgres_url: postgres://localhost/sleepy?sslmode=disable
sleepy:
  server_url: https://sleepy.example.com
  device_name: laptop
  device_id: 42
  token: ${SLEEPY_TEST_TOKEN}
  ignore_classes: [keepassxc, org.gnome.Nautilus]
  request_timeout: 5s
  notify_on_failure: true
scratchpads:
  term:
    command: kitty
`

func TestParse(t *testing.T) {
	t.Setenv("SLEEPY_TEST_TOKEN", "s3cret")

	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !cfg.HasPlugin("sleepy") || cfg.HasPlugin("scratchpads") {
		t.Errorf("unexpected plugins %v", cfg.Plugins)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "default" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.History.PostgresURL != "postgres://localhost/sleepy?sslmode=disable" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}

	s := cfg.Section("sleepy")
	if got := s.String("server_url"); got != "https://sleepy.example.com" {
		t.Errorf("server_url = %q", got)
	}
	if got := s.String("device_id"); got != "42" {
		t.Errorf("device_id = %q, want 42", got)
	}
	if got := s.String("token"); got != "s3cret" {
		t.Errorf("token = %q, want expanded env value", got)
	}
	if got := s.Strings("ignore_classes"); len(got) != 2 || got[1] != "org.gnome.Nautilus" {
		t.Errorf("ignore_classes = %v", got)
	}
	if got := s.Duration("request_timeout", time.Minute); got != 5*time.Second {
		t.Errorf("request_timeout = %v, want 5s", got)
	}
	if !s.Bool("notify_on_failure") {
		t.Error("notify_on_failure should be true")
	}

	if _, ok := cfg.Sections["scratchpads"]; !ok {
		t.Error("non-reserved mappings should become sections")
	}
	for _, reserved := range []string{"plugins", "log", "history"} {
		if _, ok := cfg.Sections[reserved]; ok {
			t.Errorf("reserved key %q should not be a section", reserved)
		}
	}
}

func TestParseUnsetEnvExpandsEmpty(t *testing.T) {
	os.Unsetenv("SLEEPY_TEST_UNSET")
	cfg, err := Parse([]byte("sleepy:\n  token: ${SLEEPY_TEST_UNSET}\n  device_name: a$b\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	s := cfg.Section("sleepy")
	if got := s.String("token"); got != "" {
		t.Errorf("token = %q, want empty", got)
	}
	if got := s.String("device_name"); got != "a$b" {
		t.Errorf("bare $ should be kept, got %q", got)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.Plugins) != 0 {
		t.Errorf("expected no plugins, got %v", cfg.Plugins)
	}
	if got := cfg.Section("sleepy").String("server_url"); got != "" {
		t.Errorf("missing section should read as empty, got %q", got)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("plugins: [sleepy\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte("plugins: [sleepy]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if got != "/tmp/xdg-test/sleepy-hyprland/config.yaml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
