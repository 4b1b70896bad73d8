package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up by LoadOrDefault.
const DefaultFileName = "config.toml"

// AppConfig is the full application configuration persisted as TOML.
type AppConfig struct {
	Window    WindowConfig    `toml:"window"`
	Camera    CameraConfig    `toml:"camera"`
	Movement  MovementConfig  `toml:"movement"`
	Rendering RenderingConfig `toml:"rendering"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
}

// CameraConfig holds the perspective settings, with the field of view in degrees.
type CameraConfig struct {
	FovDegrees float32 `toml:"fov_degrees"`
	Znear      float32 `toml:"znear"`
	Zfar       float32 `toml:"zfar"`
}

// MovementConfig holds the camera controller speeds.
type MovementConfig struct {
	MoveSpeed        float32 `toml:"move_speed"`
	RotationSpeed    float32 `toml:"rotation_speed"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
}

// RenderingConfig holds the settings consumed by the graphics engine.
// MsaaSamples is validated but pipelines are always created single-sample.
type RenderingConfig struct {
	ClearColor  [4]float64 `toml:"clear_color"`
	Vsync       bool       `toml:"vsync"`
	MsaaSamples uint32     `toml:"msaa_samples"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - AppConfig: the default configuration
func Default() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "Demo Engine",
			Resizable: true,
		},
		Camera: CameraConfig{
			FovDegrees: 45,
			Znear:      0.1,
			Zfar:       100,
		},
		Movement: MovementConfig{
			MoveSpeed:        5.0,
			RotationSpeed:    1.0,
			MouseSensitivity: 0.001,
		},
		Rendering: RenderingConfig{
			ClearColor:  [4]float64{0.5, 0.2, 0.2, 1.0},
			Vsync:       true,
			MsaaSamples: 1,
		},
	}
}

// Load reads and decodes a TOML config file.
// Keys missing from the file keep their default values.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - AppConfig: the decoded configuration
//   - error: a ConfigError if the file cannot be read or parsed
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, common.WrapError(common.ErrConfig, err, "failed to read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML bytes on top of the defaults.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - AppConfig: the decoded configuration
//   - error: a ConfigError if the document is invalid
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return AppConfig{}, common.WrapError(common.ErrConfig, err, "invalid TOML at line %d column %d", row, col)
		}
		return AppConfig{}, common.WrapError(common.ErrConfig, err, "invalid TOML")
	}
	return cfg, nil
}

// LoadOrDefault loads name relative to the working directory.
// Any failure falls back to Default, and the failure is returned alongside it so the caller can log it.
//
// Parameters:
//   - name: file name relative to the working directory
//
// Returns:
//   - AppConfig: the loaded or default configuration
//   - error: the load failure, or nil
func LoadOrDefault(name string) (AppConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Default(), common.WrapError(common.ErrConfig, err, "failed to resolve working directory")
	}
	path := filepath.Join(wd, name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save encodes the configuration as TOML, creating parent directories as needed.
//
// Parameters:
//   - path: destination file
//
// Returns:
//   - error: a ConfigError if encoding or writing fails
func (c AppConfig) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return common.WrapError(common.ErrConfig, err, "failed to encode config")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return common.WrapError(common.ErrConfig, err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return common.WrapError(common.ErrConfig, err, "failed to write %s", path)
	}
	return nil
}

// Validate reports the first invalid value in the configuration.
//
// Returns:
//   - error: a ConfigError describing the problem, or nil
func (c AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return common.NewError(common.ErrConfig, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Znear <= 0 {
		return common.NewError(common.ErrConfig, "camera znear must be > 0, got %v", c.Camera.Znear)
	}
	if c.Camera.Zfar <= c.Camera.Znear {
		return common.NewError(common.ErrConfig, "camera zfar (%v) must be greater than znear (%v)", c.Camera.Zfar, c.Camera.Znear)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return common.NewError(common.ErrConfig, "camera fov_degrees must be within (0, 180), got %v", c.Camera.FovDegrees)
	}
	return c.Rendering.Validate()
}

// Validate checks the clear color range and the MSAA sample count.
//
// Returns:
//   - error: a ConfigError describing the problem, or nil
func (r RenderingConfig) Validate() error {
	for i, v := range r.ClearColor {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return common.NewError(common.ErrConfig, "clear_color[%d] must be within [0, 1], got %v", i, v)
		}
	}
	switch r.MsaaSamples {
	case 1, 2, 4, 8:
	default:
		return common.NewError(common.ErrConfig, "msaa_samples must be 1, 2, 4 or 8, got %d", r.MsaaSamples)
	}
	return nil
}

// Aspect returns the window aspect ratio (width / height).
//
// Returns:
//   - float32: the aspect ratio, or 1 if the height is zero
func (c AppConfig) Aspect() float32 {
	if c.Window.Height == 0 {
		return 1
	}
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// FovRadians converts the configured field of view to radians.
//
// Returns:
//   - float32: the vertical field of view in radians
func (c CameraConfig) FovRadians() float32 {
	return c.FovDegrees * math.Pi / 180
}

// String summarizes the configuration for logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("window=%dx%d %q vsync=%t fov=%.1f", c.Window.Width, c.Window.Height, c.Window.Title, c.Rendering.Vsync, c.Camera.FovDegrees)
}
