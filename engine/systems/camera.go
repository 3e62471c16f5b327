package systems

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/rtscam/engine/components"
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
	"github.com/spaghettifunk/rtscam/engine/resources"
)

type CameraLookup struct {
	ID             uuid.UUID
	Name           string
	ReferenceCount uint16
	Camera         *components.RtsCamera
	/** @brief Per-camera overrides. Nil records fall back to the defaults. */
	Settings components.CameraSettings
	/** @brief The transform produced by the last update that was not skipped. */
	Transform math.Transform
}

type CameraSystem struct {
	Config  *CameraSystemConfig
	Lookup  map[string]*CameraLookup
	Cameras []*CameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *CameraLookup

	// Settings received for cameras that are not registered yet.
	pendingSettings map[string]components.CameraSettings
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system, not counting the default camera.
	 */
	MaxCameraCount uint16
	/**
	 * @brief Optional source of reloaded camera settings. Each resource is
	 * applied to the camera with the same name at the start of Update.
	 */
	SettingsUpdates <-chan *resources.Resource
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @return The camera system, or an error if the configuration is invalid.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	cs := &CameraSystem{
		Config:          config,
		Cameras:         make([]*CameraLookup, 0, config.MaxCameraCount),
		Lookup:          make(map[string]*CameraLookup, config.MaxCameraCount),
		pendingSettings: make(map[string]components.CameraSettings),
	}
	// Setup default camera.
	cs.DefaultCamera = newCameraLookup(components.DEFAULT_CAMERA_NAME, components.NewRtsCamera(), components.CameraSettings{})
	return cs, nil
}

func newCameraLookup(name string, camera *components.RtsCamera, settings components.CameraSettings) *CameraLookup {
	return &CameraLookup{
		ID:        uuid.New(),
		Name:      name,
		Camera:    camera,
		Settings:  settings,
		Transform: camera.Transform(),
	}
}

/**
 * @brief Shuts down the camera system, dropping every registered camera.
 */
func (cs *CameraSystem) Shutdown() error {
	for _, l := range cs.Cameras {
		core.LogDebug("Dropping camera '%s' (%s).", l.Name, l.ID)
	}
	cs.Cameras = cs.Cameras[:0]
	clear(cs.Lookup)
	clear(cs.pendingSettings)
	return nil
}

/**
 * @brief Registers a camera under name with its settings overrides. Settings
 * previously received for that name take precedence over settings, which
 * are then ignored and not validated.
 *
 * @return The identifier of the new camera.
 */
func (cs *CameraSystem) Register(name string, camera *components.RtsCamera, settings components.CameraSettings) (uuid.UUID, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return uuid.Nil, fmt.Errorf("%s: %w", name, core.ErrCameraAlreadyExists)
	}
	if _, ok := cs.Lookup[name]; ok {
		return uuid.Nil, fmt.Errorf("%s: %w", name, core.ErrCameraAlreadyExists)
	}
	if len(cs.Cameras) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("%s: %w (%d). Adjust camera system config to allow more", name, core.ErrCameraLimitReached, cs.Config.MaxCameraCount)
		core.LogError(err.Error())
		return uuid.Nil, err
	}
	// Pending settings were validated by SetSettings.
	if pending, ok := cs.pendingSettings[name]; ok {
		settings = pending
		delete(cs.pendingSettings, name)
	} else if err := settings.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("camera '%s': %w", name, err)
	}
	if camera == nil {
		camera = components.NewRtsCamera()
	}

	l := newCameraLookup(name, camera, settings)
	l.ReferenceCount = 1
	cs.Cameras = append(cs.Cameras, l)
	cs.Lookup[name] = l

	core.With("camera", name, "id", l.ID).Debug("Registered camera.")
	return l.ID, nil
}

/**
 * @brief Acquires a pointer to a camera by name.
 * If one is not found, a new one with default settings is created and returned.
 * Internal reference counter is incremented.
 *
 * @param name The name of the camera to acquire.
 * @return A pointer to a camera if successful; an error otherwise.
 */
func (cs *CameraSystem) Acquire(name string) (*components.RtsCamera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera.Camera, nil
	}
	if l, ok := cs.Lookup[name]; ok {
		l.ReferenceCount++
		return l.Camera, nil
	}

	// Create/register the new camera.
	core.LogDebug("Creating new camera named '%s'...", name)
	if _, err := cs.Register(name, components.NewRtsCamera(), components.CameraSettings{}); err != nil {
		return nil, err
	}
	return cs.Lookup[name].Camera, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is removed
 * and its name is usable by a new camera.
 *
 * @param name The name of the camera to release.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	l, ok := cs.Lookup[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup for '%s'. Nothing was done.", name)
		return
	}
	// Decrement the reference count, and drop the camera if the counter reaches 0.
	l.ReferenceCount--
	if l.ReferenceCount < 1 {
		delete(cs.Lookup, name)
		for i, c := range cs.Cameras {
			if c == l {
				cs.Cameras = append(cs.Cameras[:i], cs.Cameras[i+1:]...)
				break
			}
		}
		core.LogDebug("Released camera '%s' (%s).", name, l.ID)
	}
}

/**
 * @brief Replaces the settings overrides of the named camera. Settings for
 * a camera that does not exist yet are kept until it is registered.
 */
func (cs *CameraSystem) SetSettings(name string, settings components.CameraSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("camera '%s': %w", name, err)
	}
	l, err := cs.get(name)
	if err != nil {
		cs.pendingSettings[name] = settings
		core.LogDebug("Holding settings for camera '%s' until it is registered.", name)
		return nil
	}
	l.Settings = settings
	core.With("camera", name, "id", l.ID).Info("Applied new settings.")
	return nil
}

// ApplySettingsResource applies a loaded settings resource to the camera
// named after it.
func (cs *CameraSystem) ApplySettingsResource(res *resources.Resource) error {
	if res.ResourceType != resources.ResourceTypeCameraSettings {
		return fmt.Errorf("resource '%s' of type %s is not camera settings", res.Name, res.ResourceType)
	}
	settings, ok := res.Data.(*components.CameraSettings)
	if !ok || settings == nil {
		return fmt.Errorf("resource '%s' carries no camera settings", res.Name)
	}
	return cs.SetSettings(res.Name, *settings)
}

/**
 * @brief Advances every camera by one frame. The default camera goes first,
 * then registered cameras in registration order. Pending settings updates
 * are applied before any camera moves.
 */
func (cs *CameraSystem) Update(in *core.FrameInput) {
	cs.drainSettingsUpdates()

	cs.updateCamera(cs.DefaultCamera, in)
	for _, l := range cs.Cameras {
		cs.updateCamera(l, in)
	}
}

func (cs *CameraSystem) updateCamera(l *CameraLookup, in *core.FrameInput) {
	s := l.Settings
	if l.Camera.Update(in, s.Zoom, s.Pan, s.Turn) {
		l.Transform = l.Camera.Transform()
	}
}

func (cs *CameraSystem) drainSettingsUpdates() {
	if cs.Config.SettingsUpdates == nil {
		return
	}
	for {
		select {
		case res, ok := <-cs.Config.SettingsUpdates:
			if !ok {
				cs.Config.SettingsUpdates = nil
				return
			}
			if err := cs.ApplySettingsResource(res); err != nil {
				core.LogError(err.Error())
			}
		default:
			return
		}
	}
}

/**
 * @brief Gets the transform computed for the named camera by the last update.
 */
func (cs *CameraSystem) Transform(name string) (math.Transform, error) {
	l, err := cs.get(name)
	if err != nil {
		return math.Transform{}, err
	}
	return l.Transform, nil
}

/**
 * @brief Gets a pointer to the default camera.
 *
 * @return A pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.RtsCamera {
	return cs.DefaultCamera.Camera
}

func (cs *CameraSystem) get(name string) (*CameraLookup, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	l, ok := cs.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, core.ErrCameraNotFound)
	}
	return l, nil
}
