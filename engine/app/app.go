// Package app runs the single-threaded window, input and render loop.
package app

import (
	"time"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine"
	"github.com/Carmen-Shannon/oxy-demo/engine/camera"
	"github.com/Carmen-Shannon/oxy-demo/engine/config"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/Carmen-Shannon/oxy-demo/engine/scene"
	"github.com/Carmen-Shannon/oxy-demo/engine/window"
	"github.com/charmbracelet/log"
)

// SceneFactory builds a scene from the loaded configuration.
type SceneFactory func(cfg config.AppConfig) scene.Scene

// sceneKeys switch to the registered scene at the same position, in registration order.
var sceneKeys = [...]uint32{common.Key1, common.Key2, common.Key3, common.Key4}

type app struct {
	cfg config.AppConfig

	window  window.Window
	engine  engine.GraphicsEngine
	state   *input.State
	watcher *config.Watcher
	log     *log.Logger

	last time.Time
	now  func() time.Time

	configPath    string
	extraScenes   []SceneFactory
	engineOptions []engine.GraphicsEngineBuilderOption
}

// DemoSceneFactory builds the demo scene with the camera and movement settings from cfg.
//
// Parameters:
//   - cfg: the application configuration
//
// Returns:
//   - scene.Scene: the uninitialized demo scene
func DemoSceneFactory(cfg config.AppConfig) scene.Scene {
	return scene.NewDemoScene(cfg.Aspect(), demoSceneOptions(cfg)...)
}

func demoSceneOptions(cfg config.AppConfig) []scene.DemoSceneBuilderOption {
	cam := camera.NewCamera(cfg.Aspect(),
		camera.WithFov(cfg.Camera.FovRadians()),
		camera.WithNear(cfg.Camera.Znear),
		camera.WithFar(cfg.Camera.Zfar),
	)
	return []scene.DemoSceneBuilderOption{
		scene.WithCamera(cam),
		scene.WithMoveSpeed(cfg.Movement.MoveSpeed),
		scene.WithRotationSpeed(cfg.Movement.RotationSpeed),
		scene.WithMouseSensitivity(cfg.Movement.MouseSensitivity),
	}
}

// Run opens the window, builds the engine around the scene from factory and blocks until the window closes.
//
// Parameters:
//   - cfg: the application configuration
//   - factory: builds the initial scene
//   - options: functional options, e.g. WithConfigWatcher
//
// Returns:
//   - error: an EventLoopCreation error if the window could not be created, or the engine construction error
func Run(cfg config.AppConfig, factory SceneFactory, options ...AppBuilderOption) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a := &app{
		cfg:   cfg,
		state: input.NewState(),
		log:   logger.With("component", "app"),
		now:   time.Now,
	}
	for _, opt := range options {
		opt(a)
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
	if err != nil {
		return err
	}
	defer win.Close()
	a.window = win

	eng, err := engine.NewGraphicsEngine(win, factory(cfg), cfg.Rendering, a.engineOptions...)
	if err != nil {
		return err
	}
	defer eng.Release()
	a.engine = eng

	for _, f := range a.extraScenes {
		if _, err := eng.AddScene(f(cfg)); err != nil {
			a.log.Warn("skipping scene", "err", err)
		}
	}

	if a.configPath != "" {
		watcher, err := config.NewWatcher(a.configPath)
		if err != nil {
			a.log.Warn("config hot reload disabled", "err", err)
		} else {
			a.watcher = watcher
			defer watcher.Close()
		}
	}

	a.bindInput()
	a.last = a.now()
	win.SetUpdateCallback(func() {
		a.frame(a.now())
	})
	a.log.Info("running", "scene", eng.Scene().Name(), "width", win.Width(), "height", win.Height())
	win.ProcessMessages()
	a.log.Info("window closed", "frames", eng.Metrics().TotalFrames())
	return nil
}

// bindInput routes window events into the input state and the engine.
func (a *app) bindInput() {
	a.window.SetKeyDownCallback(a.keyDown)
	a.window.SetKeyUpCallback(func(code uint32) {
		a.state.SetKey(code, false)
	})
	a.window.SetMouseButtonDownCallback(func(button uint32, x, y int32) {
		a.state.SetMouseButton(button, true)
	})
	a.window.SetMouseButtonUpCallback(func(button uint32, x, y int32) {
		a.state.SetMouseButton(button, false)
	})
	a.window.SetMouseMoveCallback(func(x, y int32) {
		a.state.SetMousePosition(float32(x), float32(y))
	})
	a.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		a.engine.Resize(uint32(width), uint32(height))
	})
}

func (a *app) keyDown(code uint32) {
	if code == common.KeyEsc {
		a.window.RequestClose()
		return
	}
	for i, key := range sceneKeys {
		if code == key {
			a.switchScene(i)
			return
		}
	}
	a.state.SetKey(code, true)
}

func (a *app) switchScene(index int) {
	names := a.engine.Scenes().Scenes()
	if index >= len(names) {
		return
	}
	if err := a.engine.SetScene(names[index]); err != nil {
		a.log.Warn("scene switch failed", "err", err)
		return
	}
	// keys held in the old scene must not keep moving the new camera
	a.state.Clear()
	a.log.Info("switched scene", "scene", names[index])
}

// frame runs one loop iteration: config hot reload, render, then the per-frame input reset.
func (a *app) frame(now time.Time) {
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now

	if a.watcher != nil {
		if cfg, ok := a.watcher.Poll(); ok {
			if err := a.engine.ApplyConfig(cfg.Rendering); err != nil {
				a.log.Warn("config not applied", "err", err)
			} else {
				a.cfg = *cfg
			}
		}
	}

	if err := a.engine.Render(dt, a.state); err != nil {
		a.log.Error("frame skipped", "err", err)
	}
	a.state.ResetMouseDelta()
}
