package systems

import (
	"github.com/spaghettifunk/rtscam/engine/resources"
)

type SystemManagerConfig struct {
	MaxCameraCount uint16
	// Reloaded camera settings, usually the asset manager's update channel.
	SettingsUpdates <-chan *resources.Resource
}

type SystemManager struct {
	CameraSystem *CameraSystem
}

func NewSystemManager(config SystemManagerConfig) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount:  config.MaxCameraCount,
		SettingsUpdates: config.SettingsUpdates,
	})
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem: cs,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
