package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tideui/tide/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.MaxSessions != DefaultMaxSessions {
		t.Errorf("MaxSessions = %d", cfg.Server.MaxSessions)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	te, ok := err.(*errors.TideError)
	if !ok {
		t.Fatalf("err = %T, want *errors.TideError", err)
	}
	if te.Code != "T080" {
		t.Errorf("code = %q, want T080", te.Code)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": `)

	_, err := Load(dir)
	te, ok := err.(*errors.TideError)
	if !ok {
		t.Fatalf("err = %T, want *errors.TideError", err)
	}
	if te.Code != errors.ErrBadConfig {
		t.Errorf("code = %q, want %q", te.Code, errors.ErrBadConfig)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg = New()
	cfg.Server.Addr = "no-port"
	if err := cfg.Validate(); err == nil {
		t.Error("bad address should fail validation")
	}

	cfg = New()
	cfg.Server.ReadTimeout = "sixty seconds"
	if err := cfg.Validate(); err == nil {
		t.Error("bad duration should fail validation")
	}

	cfg = New()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("bad log level should fail validation")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "demo"

	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "demo" || loaded.Server.Addr != DefaultAddr {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	// t.TempDir may sit behind a symlink; compare resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("root = %q, want %q", got, root)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("45s", time.Second); got != 45*time.Second {
		t.Errorf("Duration(45s) = %v", got)
	}
	if got := Duration("", 5*time.Second); got != 5*time.Second {
		t.Errorf("Duration(empty) = %v", got)
	}
	if got := Duration("nope", 5*time.Second); got != 5*time.Second {
		t.Errorf("Duration(bad) = %v", got)
	}
}
