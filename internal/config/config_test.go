package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timezone != "Asia/Kuala_Lumpur" {
		t.Errorf("Timezone = %q, want Asia/Kuala_Lumpur", cfg.Timezone)
	}
	if cfg.OutputPath != "timetable.ics" {
		t.Errorf("OutputPath = %q, want timetable.ics", cfg.OutputPath)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perms = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	// Neutralize any ambient credentials so file values stay visible.
	t.Setenv("TARUMT_USERNAME", "")
	t.Setenv("TARUMT_PASSWORD", "")
	t.Setenv("TARUMT_APP_SECRET", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("username: alice\noutput: out.ics\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Username != "alice" {
		t.Errorf("Username = %q, want alice", cfg.Username)
	}
	if cfg.OutputPath != "out.ics" {
		t.Errorf("OutputPath = %q, want out.ics", cfg.OutputPath)
	}
	if cfg.BaseURL == "" || cfg.UIDDomain == "" || cfg.RefreshCron == "" {
		t.Errorf("defaults not filled in: %+v", cfg)
	}
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv("TARUMT_USERNAME", "env-user")
	t.Setenv("TARUMT_PASSWORD", "env-pass")
	t.Setenv("TARUMT_APP_SECRET", "env-secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("username: file-user\npassword: file-pass\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Username != "env-user" || cfg.Password != "env-pass" || cfg.AppSecret != "env-secret" {
		t.Errorf("environment should win over file values: %+v", cfg)
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty config path")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
