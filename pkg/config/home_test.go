package config

import (
	"path/filepath"
	"testing"
)

func TestGetHome_EnvVariable(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)

	dir := t.TempDir()
	t.Setenv(envHome, dir)

	if got := GetHome(); got != dir {
		t.Errorf("expected home %s, got %s", dir, got)
	}
}

func TestGetHome_Cached(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)

	dir := t.TempDir()
	t.Setenv(envHome, dir)
	first := GetHome()

	// Changing the env after the first call must not change the result
	t.Setenv(envHome, t.TempDir())
	if got := GetHome(); got != first {
		t.Errorf("home must be cached, got %s then %s", first, got)
	}
}

func TestGetLogPath(t *testing.T) {
	ResetHome()
	t.Cleanup(ResetHome)

	dir := t.TempDir()
	t.Setenv(envHome, dir)

	want := filepath.Join(dir, "screenpilot.log")
	if got := GetLogPath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
