package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/pelletier/go-toml/v2"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Demo Engine" || !cfg.Window.Resizable {
		t.Errorf("window title/resizable = %q/%t, want \"Demo Engine\"/true", cfg.Window.Title, cfg.Window.Resizable)
	}
	if cfg.Camera.FovDegrees != 45 || cfg.Camera.Znear != 0.1 || cfg.Camera.Zfar != 100 {
		t.Errorf("camera = %+v, want fov 45 near 0.1 far 100", cfg.Camera)
	}
	if cfg.Movement.MoveSpeed != 5 || cfg.Movement.RotationSpeed != 1 || cfg.Movement.MouseSensitivity != 0.001 {
		t.Errorf("movement = %+v", cfg.Movement)
	}
	if cfg.Rendering.ClearColor != [4]float64{0.5, 0.2, 0.2, 1.0} || !cfg.Rendering.Vsync || cfg.Rendering.MsaaSamples != 1 {
		t.Errorf("rendering = %+v", cfg.Rendering)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestAppConfig_Aspect(t *testing.T) {
	aspect := Default().Aspect()
	if d := aspect - 800.0/600.0; d > 1e-6 || d < -1e-6 {
		t.Errorf("Aspect() = %v, want %v", aspect, 800.0/600.0)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")

	cfg := Default()
	cfg.Window.Title = "Round Trip"
	cfg.Rendering.Vsync = false
	cfg.Movement.MoveSpeed = 7.5

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestSave_WritesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Default().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"[window]", "[camera]", "[movement]", "[rendering]", "width = 800", "Demo Engine"} {
		if !strings.Contains(text, want) {
			t.Errorf("saved TOML missing %q:\n%s", want, text)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !common.IsKind(err, common.ErrConfig) {
		t.Errorf("Load(missing) error = %v, want ConfigError", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[window\nwidth = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !common.IsKind(err, common.ErrConfig) {
		t.Errorf("Load(bad) error = %v, want ConfigError", err)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[window]\nwidth = 1024\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("Width = %d, want 1024", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 || cfg.Camera.Zfar != 100 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault(DefaultFileName)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadOrDefault() = %+v, want defaults", cfg)
	}
}

func TestLoadOrDefault_InvalidFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("not = [toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrDefault(DefaultFileName)
	if err == nil {
		t.Error("LoadOrDefault() error = nil, want parse error")
	}
	if cfg != Default() {
		t.Errorf("LoadOrDefault() = %+v, want defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"zero width", func(c *AppConfig) { c.Window.Width = 0 }},
		{"zero near", func(c *AppConfig) { c.Camera.Znear = 0 }},
		{"far before near", func(c *AppConfig) { c.Camera.Zfar = 0.05 }},
		{"fov too wide", func(c *AppConfig) { c.Camera.FovDegrees = 180 }},
		{"clear color out of range", func(c *AppConfig) { c.Rendering.ClearColor[1] = 1.5 }},
		{"msaa 3", func(c *AppConfig) { c.Rendering.MsaaSamples = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !common.IsKind(err, common.ErrConfig) {
				t.Errorf("Validate() = %v, want ConfigError", err)
			}
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Default().Save(path); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })

	if cfg, ok := w.Poll(); ok || cfg != nil {
		t.Fatalf("Poll() before change = %v, %t, want nil, false", cfg, ok)
	}

	updated := Default()
	updated.Rendering.Vsync = false
	data, err := toml.Marshal(updated)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cfg, ok := w.Poll(); ok {
			if cfg.Rendering.Vsync {
				t.Errorf("reloaded Vsync = true, want false")
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Poll() never reported the rewritten config")
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := w.Poll(); ok {
		t.Error("Poll() after Close reported a change")
	}
}
