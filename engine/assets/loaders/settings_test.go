package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/rtscam/engine/components"
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
	"github.com/spaghettifunk/rtscam/engine/resources"
)

const scoutSettings = `
[zoom]
max_velocity = 8
distance_range = { min = 2.0, max = 40.0 }

[pan]
left_keys = ["J", "key_left"]

[turn]
yaw_range = { min = 0.0, max = 3.14 }
`

func TestDecodeCameraSettings(t *testing.T) {
	s, err := DecodeCameraSettings(strings.NewReader(scoutSettings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defaults := components.NewCameraSettings()

	if s.Zoom.MaxVelocity != 8 {
		t.Fatalf("max velocity: got %v", s.Zoom.MaxVelocity)
	}
	if s.Zoom.DistanceRange != math.NewRange(2, 40) {
		t.Fatalf("distance range: got %+v", s.Zoom.DistanceRange)
	}
	if s.Zoom.AngleRange != defaults.Zoom.AngleRange || s.Zoom.ScrollAccel != defaults.Zoom.ScrollAccel {
		t.Fatalf("fields missing from the file must keep their defaults")
	}
	if len(s.Pan.LeftKeys) != 2 || s.Pan.LeftKeys[0] != core.KEY_J || s.Pan.LeftKeys[1] != core.KEY_LEFT {
		t.Fatalf("left keys: got %v", s.Pan.LeftKeys)
	}
	if len(s.Pan.RightKeys) != 2 || s.Pan.RightKeys[1] != core.KEY_D {
		t.Fatalf("right keys must keep their defaults, got %v", s.Pan.RightKeys)
	}
	if s.Turn.YawRange.Max != 3.14 || s.Turn.MaxSpeed != defaults.Turn.MaxSpeed {
		t.Fatalf("turn: got %+v", s.Turn)
	}
}

func TestDecodeCameraSettingsEmpty(t *testing.T) {
	s, err := DecodeCameraSettings(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Zoom == nil || s.Pan == nil || s.Turn == nil {
		t.Fatalf("an empty document yields the defaults")
	}
	if s.Pan.IdleDeceleration != 17.5 {
		t.Fatalf("pan idle deceleration: got %v", s.Pan.IdleDeceleration)
	}
}

func TestDecodeCameraSettingsErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown field", "[zoom]\nmax_speed = 3\n", nil},
		{"unknown key name", "[turn]\nleft_keys = [\"HYPER\"]\n", nil},
		{"malformed document", "[zoom\n", nil},
		{"inverted range", "[zoom]\ndistance_range = { min = 50.0, max = 10.0 }\n", core.ErrInvalidRange},
		{"negative magnitude", "[pan]\nmax_speed = -1.0\n", core.ErrNegativeMagnitude},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeCameraSettings(strings.NewReader(c.doc))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestSettingsLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scout.toml")
	if err := os.WriteFile(path, []byte(scoutSettings), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &SettingsLoader{}
	res, err := loader.Load(path, resources.ResourceTypeCameraSettings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Name != "scout" || res.FullPath != path || res.DataSize != uint64(len(scoutSettings)) {
		t.Fatalf("unexpected resource %+v", res)
	}
	s, ok := res.Data.(*components.CameraSettings)
	if !ok || s.Zoom.MaxVelocity != 8 {
		t.Fatalf("unexpected data %#v", res.Data)
	}

	if _, err := loader.Load(filepath.Join(dir, "missing.toml"), resources.ResourceTypeCameraSettings); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestShippedSettingsLoad(t *testing.T) {
	loader := &SettingsLoader{}
	res, err := loader.Load(filepath.Join("..", "..", "..", "assets", "settings", "world.toml"), resources.ResourceTypeCameraSettings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings := res.Data.(*components.CameraSettings)
	if res.Name != "world" {
		t.Fatalf("got name %q", res.Name)
	}
	if settings.Zoom.DistanceRange != math.NewRange(25, 100) || settings.Pan.MaxSpeed != 25 {
		t.Fatalf("overrides not applied: %+v %+v", settings.Zoom, settings.Pan)
	}
	if len(settings.Turn.LeftKeys) != 2 || settings.Turn.LeftKeys[1] != core.KEY_Z {
		t.Fatalf("got turn keys %v", settings.Turn.LeftKeys)
	}
}
