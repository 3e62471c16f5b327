package loaders

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/rtscam/engine/components"
	"github.com/spaghettifunk/rtscam/engine/resources"
)

// SettingsLoader reads a camera settings file. The resource name is the
// file name without its extension, which is also the camera name.
type SettingsLoader struct{}

func (sl *SettingsLoader) Load(path string, assetType resources.ResourceType) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	settings, err := DecodeCameraSettings(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load camera settings %s: %w", path, err)
	}
	return &resources.Resource{
		ResourceType: assetType,
		Name:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath:     path,
		DataSize:     uint64(len(data)),
		Data:         settings,
	}, nil
}

// Unload drops the decoded settings. Cameras keep their own copy once
// applied.
func (sl *SettingsLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}

// DecodeCameraSettings decodes TOML on top of the default settings, so
// fields the document leaves out keep their defaults. Unknown fields and
// invalid values are errors.
func DecodeCameraSettings(r io.Reader) (*components.CameraSettings, error) {
	settings := components.NewCameraSettings()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}
