package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorustyt/gocave/cave"
	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if cfg.Config != want.Config {
		t.Errorf("cave config = %+v, want %+v", cfg.Config, want.Config)
	}
	if cfg.Log != want.Log || cfg.Server != want.Server {
		t.Errorf("log = %+v server = %+v", cfg.Log, cfg.Server)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, "cave.yaml", `
width: 64
height: 40
square_size: 0.5
seed: 1234
log:
  level: debug
server:
  cache_entries: 8
`)
	t.Setenv("CAVE_HEIGHT", "48")
	t.Setenv("CAVE_LOG_FILE", "/tmp/cave.log")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SquareSize != 0.5 || cfg.Seed != "1234" {
		t.Errorf("square size = %v seed = %q", cfg.SquareSize, cfg.Seed)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/cave.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Server.CacheEntries != 8 || cfg.Server.Addr != ":8080" {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadFlagsOverride(t *testing.T) {
	t.Setenv("CAVE_WIDTH", "90")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--width=30", "--random-seed", "--log-level=warn"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("", fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 30 || !cfg.UseRandomSeed || cfg.Log.Level != "warn" {
		t.Errorf("width = %d random = %v level = %q", cfg.Width, cfg.UseRandomSeed, cfg.Log.Level)
	}
	if cfg.Height != Default().Height {
		t.Errorf("unset flag changed height to %d", cfg.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CAVE_FILL_PERCENT", "150")
	_, err := Load("", nil)
	if !errors.Is(err, cave.ErrInvalidFill) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadEnv(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file: %v", err)
	}
	path := writeFile(t, ".env", "CAVE_SEED=from-dotenv\n")
	t.Setenv("CAVE_SEED", "")
	os.Unsetenv("CAVE_SEED")
	if err := LoadEnv(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != "from-dotenv" {
		t.Errorf("seed = %q", cfg.Seed)
	}
}
