package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/GreatValueCreamSoda/gossimu2/internal/config"
)

// isolateConfigDir points the user config directory at a fresh temp dir so
// tests never see a real config file.
func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	return dir
}

func Test_Load_Defaults(t *testing.T) {
	isolateConfigDir(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Video.FrameThreads != 3 {
		t.Fatalf("unexpected frame threads: %d", cfg.Video.FrameThreads)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	want := filepath.Join("gossimu2", "history.db")
	if !strings.HasSuffix(cfg.History.Path, want) {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
	if !filepath.IsAbs(cfg.History.Path) {
		t.Fatalf("history path is not absolute: %q", cfg.History.Path)
	}
	if cfg.Chart.Width != 1500 || cfg.Chart.Height != 1000 {
		t.Fatalf("unexpected chart size: %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
}

func Test_Load_File(t *testing.T) {
	isolateConfigDir(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[video]
frame_threads = 8

[history]
enabled = false
path = "/tmp/scores.db"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Video.FrameThreads != 8 {
		t.Fatalf("frame threads not taken from file: %d", cfg.Video.FrameThreads)
	}
	if cfg.History.Enabled {
		t.Fatal("history should be disabled by the file")
	}
	if cfg.History.Path != "/tmp/scores.db" {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unset log level should keep default, got %q", cfg.Logging.Level)
	}
	if cfg.Chart.Width != 1500 || cfg.Chart.Height != 1000 {
		t.Fatalf("unset chart size should keep defaults, got %dx%d",
			cfg.Chart.Width, cfg.Chart.Height)
	}
}

func Test_Load_NormalizesBadValues(t *testing.T) {
	isolateConfigDir(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[video]
frame_threads = 0

[chart]
width = -20
height = 0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Video.FrameThreads != 3 {
		t.Fatalf("frame threads not folded to default: %d", cfg.Video.FrameThreads)
	}
	if cfg.Chart.Width != 1500 || cfg.Chart.Height != 1000 {
		t.Fatalf("chart size not folded to defaults: %dx%d",
			cfg.Chart.Width, cfg.Chart.Height)
	}
}

func Test_Load_ExplicitPathMissing(t *testing.T) {
	isolateConfigDir(t)
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for an explicit path that does not exist")
	}
}

func Test_Load_MalformedFile(t *testing.T) {
	isolateConfigDir(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[video\nframe_threads"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func Test_CreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "frame_threads") {
		t.Fatalf("sample config missing frame_threads: %s", contents)
	}

	// The sample documents the built-in defaults.
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("sample values diverge from defaults: %+v", cfg)
	}
}
