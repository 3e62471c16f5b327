package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/rtscam/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`
	// Directory watched for camera settings files, one file per camera.
	SettingsDir string `toml:"settings_dir"`
	// Maximum number of cameras besides the default one.
	MaxCameraCount uint16 `toml:"max_camera_count"`
}

func NewApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:      100,
		StartPosY:      100,
		StartWidth:     1280,
		StartHeight:    720,
		Name:           "RTS Camera",
		LogLevel:       core.InfoLevel,
		SettingsDir:    "assets/settings",
		MaxCameraCount: 8,
	}
}

// LoadApplicationConfig reads the TOML file at path on top of the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read application config %s: %w", path, err)
	}
	config := NewApplicationConfig()
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode application config %s: %w", path, err)
	}
	if config.MaxCameraCount == 0 {
		return nil, fmt.Errorf("application config %s: max_camera_count must be > 0", path)
	}
	return config, nil
}
