package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.FirstRunComplete || settings.TelemetryEnabled {
		t.Errorf("LoadSettings() = %+v, want first-run defaults", settings)
	}
	if settings.AgeUnit != defaultAgeUnit {
		t.Errorf("AgeUnit = %q, want %q", settings.AgeUnit, defaultAgeUnit)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := &Settings{FirstRunComplete: true, VimMode: true, AgeUnit: " y"}
	if err := SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gridedit", "settings.json")); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if *got != *want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}
}

func TestLoadSettingsMissingAgeUnitKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "gridedit"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gridedit", "settings.json"), []byte(`{"vim_mode": true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if !got.VimMode || got.AgeUnit != defaultAgeUnit {
		t.Errorf("LoadSettings() = %+v", got)
	}
}
