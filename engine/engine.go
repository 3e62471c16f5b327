package engine

import (
	"os"

	"github.com/spaghettifunk/rtscam/engine/assets"
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/platform"
	"github.com/spaghettifunk/rtscam/engine/resources"
	"github.com/spaghettifunk/rtscam/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// How often the frame metrics are logged, in seconds.
const metricsLogInterval float64 = 5.0

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	input         *core.InputState
	platform      *platform.Platform
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	input := core.NewInputState()
	p := platform.New(input)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		MaxCameraCount:  g.ApplicationConfig.MaxCameraCount,
		SettingsUpdates: am.Updates(),
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		input:         input,
		platform:      p,
		assetManager:  am,
		systemManager: sm,
		isRunning:     true,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	core.SetLogLevel(config.LogLevel)

	e.platform.OnResize(e.onResized)
	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	if err := e.loadSettings(config.SettingsDir); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// loadSettings applies every settings file found in dir and starts watching
// it for changes. A missing directory leaves every camera on its defaults.
func (e *Engine) loadSettings(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		core.LogWarn("settings directory '%s' is not available, using default camera settings: %s", dir, err)
		return nil
	}
	if err := e.assetManager.Initialize(dir); err != nil {
		return err
	}
	for _, res := range e.assetManager.LoadAll(resources.ResourceTypeCameraSettings) {
		if err := e.systemManager.CameraSystem.ApplySettingsResource(res); err != nil {
			core.LogError(err.Error())
		}
		if err := e.assetManager.UnloadAsset(res); err != nil {
			core.LogError(err.Error())
		}
	}
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	var lastMetricsLog float64 = 0.0

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		if !e.isSuspended {
			// Update clock and get delta time.
			e.clock.Update()

			var currentTime float64 = e.clock.Elapsed()
			var delta float64 = (currentTime - e.lastTime)
			var frameStartTime float64 = e.platform.GetAbsoluteTime()

			width, height := e.platform.WindowSize()
			in := e.input.Snapshot(float32(delta), currentTime, width, height)
			e.systemManager.CameraSystem.Update(in)

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err)
				e.isRunning = false
				break
			}

			var frameEndTime float64 = e.platform.GetAbsoluteTime()
			e.metrics.Update(frameEndTime - frameStartTime)

			if currentTime-lastMetricsLog >= metricsLogInterval {
				fps, frameTime := e.metrics.Frame()
				core.LogDebug("FPS: %.0f, frame time: %.3fms", fps, frameTime)
				lastMetricsLog = currentTime
			}

			// Update last time
			e.lastTime = currentTime
		} else {
			// Nothing to update while minimized.
			e.platform.Sleep(16)
		}
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}

// RequestShutdown makes Run return after the current frame. It is safe to
// call from any goroutine.
func (e *Engine) RequestShutdown() {
	e.platform.RequestClose()
}

// GetFramebufferSize returns the width and height (in this order)
// of the window
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onResized(width, height uint32) {
	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
		// Do not hand the time or the wheel ticks of the minimized
		// window to the cameras.
		e.clock.Update()
		e.lastTime = e.clock.Elapsed()
		e.input.DiscardScroll()
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
