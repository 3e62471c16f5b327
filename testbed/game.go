package testbed

import (
	"fmt"

	"github.com/spaghettifunk/rtscam/engine"
	"github.com/spaghettifunk/rtscam/engine/components"
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
)

// The testbed camera. A settings file with the same name in the settings
// directory overrides the values below.
const worldCameraName = "world"

// Seconds between two camera reports.
const reportInterval float64 = 1.0

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.RtsCamera

	width  uint32
	height uint32

	// Positions of the grid of markers the camera flies over.
	markers []math.Vec3

	elapsed    float64
	lastReport float64
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		return nil, fmt.Errorf("testbed requires an application config")
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers ")
	}

	state := g.State.(*gameState)

	// An 11x11 grid, 10 units apart, centered on (50, 0, 50).
	for x := 0; x <= 100; x += 10 {
		for z := 0; z <= 100; z += 10 {
			state.markers = append(state.markers, math.NewVec3(float32(x), 0, float32(z)))
		}
	}

	camera := components.NewRtsCamera()
	camera.LookingAt = math.NewVec3(50, 0, 50)
	camera.ZoomDistance = 100

	zoom := components.NewZoomSettings()
	zoom.ScrollAccel = 10
	zoom.MaxVelocity = 50
	zoom.IdleDeceleration = 200
	zoom.AngleChangeZone = math.NewRange(30, 75)
	zoom.DistanceRange = math.NewRange(25, 100)

	pan := components.NewPanSettings()
	pan.MouseAccel = 75
	pan.KeyboardAccel = 50
	pan.IdleDeceleration = 75
	pan.MaxSpeed = 25

	id, err := g.SystemManager.CameraSystem.Register(worldCameraName, camera, components.CameraSettings{
		Zoom: &zoom,
		Pan:  &pan,
	})
	if err != nil {
		return err
	}
	state.WorldCamera = camera

	core.LogInfo("Registered camera '%s' (%s) over %d markers.", worldCameraName, id, len(state.markers))
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.elapsed += deltaTime

	if state.elapsed-state.lastReport < reportInterval {
		return nil
	}
	state.lastReport = state.elapsed

	transform, err := g.SystemManager.CameraSystem.Transform(worldCameraName)
	if err != nil {
		return err
	}
	eye := transform.Position
	focus := state.WorldCamera.LookingAt
	nearest, distance := nearestMarker(state.markers, focus)

	core.LogInfo("Camera eye: [%.3f, %.3f, %.3f] yaw: %.1f° zoom: %.2f",
		eye.X, eye.Y, eye.Z, math.RadToDeg(state.WorldCamera.Yaw), state.WorldCamera.ZoomDistance)
	core.LogDebug("Nearest marker: [%.0f, %.0f] at %.2f", nearest.X, nearest.Z, distance)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	core.LogDebug("Testbed viewport is now %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	if g.SystemManager != nil {
		g.SystemManager.CameraSystem.Release(worldCameraName)
	}
	core.LogInfo("testbed shut down")
	return nil
}

// nearestMarker returns the marker closest to p on the ground plane.
func nearestMarker(markers []math.Vec3, p math.Vec3) (math.Vec3, float32) {
	ground := math.NewVec3(p.X, 0, p.Z)
	var best math.Vec3
	bestDistance := float32(-1)
	for _, m := range markers {
		d := m.Distance(ground)
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = m, d
		}
	}
	return best, bestDistance
}
