package components

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
)

/**
 * @brief Controls how the camera zooms toward and away from the point it
 * is looking at, and how its pitch follows the zoom distance.
 */
type ZoomSettings struct {
	/** @brief The minimum and maximum pitch in radians. */
	AngleRange math.Range `toml:"angle_range"`
	/**
	 * @brief At AngleChangeZone.Min the pitch equals AngleRange.Min, and at
	 * AngleChangeZone.Max it equals AngleRange.Max. Outside this zone the
	 * camera only zooms; inside it the pitch changes too.
	 */
	AngleChangeZone math.Range `toml:"angle_change_zone"`
	/** @brief The minimum and maximum distance from the target. */
	DistanceRange math.Range `toml:"distance_range"`
	/** @brief The maximum outward zoom velocity. Inward velocity is not capped. */
	MaxVelocity float32 `toml:"max_velocity"`
	/**
	 * @brief Change in zoom velocity per scrolled line. Scroll events arrive as
	 * discrete ticks, so this is not multiplied by the frame delta.
	 */
	ScrollAccel float32 `toml:"scroll_accel"`
	/** @brief Zoom acceleration while a zoom key is held. */
	KeyboardAccel float32 `toml:"keyboard_accel"`
	/** @brief Zoom deceleration while nothing drives the zoom. */
	IdleDeceleration float32 `toml:"idle_deceleration"`
	/** @brief Keys which zoom the camera in. */
	ZoomInKeys []core.KeyCode `toml:"zoom_in_keys"`
	/** @brief Keys which zoom the camera out. */
	ZoomOutKeys []core.KeyCode `toml:"zoom_out_keys"`
}

/**
 * @brief Controls panning across the ground plane.
 */
type PanSettings struct {
	/** @brief Acceleration applied while the cursor is near a window edge. */
	MouseAccel float32 `toml:"mouse_accel"`
	/** @brief Distance from a window edge within which the cursor pans the camera. */
	MouseAccelMargin float32 `toml:"mouse_accel_margin"`
	/** @brief Acceleration applied while a pan key is held. */
	KeyboardAccel float32 `toml:"keyboard_accel"`
	/** @brief The maximum pan speed. */
	MaxSpeed float32 `toml:"max_speed"`
	/** @brief Pan deceleration in a direction nothing accelerates toward. */
	IdleDeceleration float32 `toml:"idle_deceleration"`
	/**
	 * @brief Pan speed multiplier, from Min when fully zoomed in to Max when
	 * fully zoomed out, interpolated by zoom distance.
	 */
	PanSpeedZoomFactorRange math.Range     `toml:"pan_speed_zoom_factor_range"`
	LeftKeys                []core.KeyCode `toml:"left_keys"`
	RightKeys               []core.KeyCode `toml:"right_keys"`
	UpKeys                  []core.KeyCode `toml:"up_keys"`
	DownKeys                []core.KeyCode `toml:"down_keys"`
}

/**
 * @brief Controls turning (yaw) around the point the camera looks at.
 */
type TurnSettings struct {
	/**
	 * @brief Fraction of the window height, measured from the top, in which an
	 * edge-resting cursor turns the camera instead of panning it.
	 */
	MouseTurnMargin float32 `toml:"mouse_turn_margin"`
	/** @brief The yaw the camera may turn to, in radians. */
	YawRange math.Range `toml:"yaw_range"`
	/** @brief Turn acceleration from the mouse, in radians per second squared. */
	MouseAccel float32 `toml:"mouse_accel"`
	/** @brief Turn acceleration from the keyboard, in radians per second squared. */
	KeyboardAccel    float32        `toml:"keyboard_accel"`
	MaxSpeed         float32        `toml:"max_speed"`
	IdleDeceleration float32        `toml:"idle_deceleration"`
	LeftKeys         []core.KeyCode `toml:"left_keys"`
	RightKeys        []core.KeyCode `toml:"right_keys"`
}

// CameraSettings bundles the three settings records of one camera. A nil
// record means the default applies.
type CameraSettings struct {
	Zoom *ZoomSettings `toml:"zoom"`
	Pan  *PanSettings  `toml:"pan"`
	Turn *TurnSettings `toml:"turn"`
}

func NewZoomSettings() ZoomSettings {
	return ZoomSettings{
		AngleRange:       math.NewRange(0.5705693, 1.1637539),
		AngleChangeZone:  math.NewRange(5.0, 100.0),
		DistanceRange:    math.NewRange(5.0, 100.0),
		MaxVelocity:      5.0,
		ScrollAccel:      5.0,
		KeyboardAccel:    5.0,
		IdleDeceleration: 5.0,
		ZoomInKeys:       []core.KeyCode{core.KEY_PLUS, core.KEY_ADD},
		ZoomOutKeys:      []core.KeyCode{core.KEY_SUBTRACT, core.KEY_MINUS},
	}
}

func NewPanSettings() PanSettings {
	return PanSettings{
		MouseAccel:              15.0,
		MouseAccelMargin:        10.0,
		KeyboardAccel:           5.0,
		MaxSpeed:                5.0,
		IdleDeceleration:        17.5,
		PanSpeedZoomFactorRange: math.NewRange(1.0, 2.0),
		LeftKeys:                []core.KeyCode{core.KEY_LEFT, core.KEY_A},
		RightKeys:               []core.KeyCode{core.KEY_RIGHT, core.KEY_D},
		UpKeys:                  []core.KeyCode{core.KEY_UP, core.KEY_W},
		DownKeys:                []core.KeyCode{core.KEY_DOWN, core.KEY_S},
	}
}

func NewTurnSettings() TurnSettings {
	return TurnSettings{
		MouseTurnMargin:  0.25,
		YawRange:         math.NewRange(0.0, math.K_PI_2),
		MouseAccel:       0.3,
		KeyboardAccel:    1.8,
		MaxSpeed:         1.5,
		IdleDeceleration: 5.0,
		LeftKeys:         []core.KeyCode{core.KEY_Q},
		RightKeys:        []core.KeyCode{core.KEY_E},
	}
}

// NewCameraSettings returns a bundle with all three records set to defaults.
func NewCameraSettings() CameraSettings {
	zoom, pan, turn := NewZoomSettings(), NewPanSettings(), NewTurnSettings()
	return CameraSettings{Zoom: &zoom, Pan: &pan, Turn: &turn}
}

func checkRange(field string, r math.Range) error {
	if r.IsInverted() {
		return fmt.Errorf("%s [%g, %g]: %w", field, r.Min, r.Max, core.ErrInvalidRange)
	}
	return nil
}

func checkMagnitude(field string, v float32) error {
	if v < 0 {
		return fmt.Errorf("%s %g: %w", field, v, core.ErrNegativeMagnitude)
	}
	return nil
}

// Validate reports inverted ranges and negative magnitudes. The update
// never calls it; loaders do, before settings reach a camera.
func (z *ZoomSettings) Validate() error {
	return errors.Join(
		checkRange("zoom.angle_range", z.AngleRange),
		checkRange("zoom.angle_change_zone", z.AngleChangeZone),
		checkRange("zoom.distance_range", z.DistanceRange),
		checkMagnitude("zoom.max_velocity", z.MaxVelocity),
		checkMagnitude("zoom.scroll_accel", z.ScrollAccel),
		checkMagnitude("zoom.keyboard_accel", z.KeyboardAccel),
		checkMagnitude("zoom.idle_deceleration", z.IdleDeceleration),
	)
}

func (p *PanSettings) Validate() error {
	return errors.Join(
		checkMagnitude("pan.mouse_accel", p.MouseAccel),
		checkMagnitude("pan.mouse_accel_margin", p.MouseAccelMargin),
		checkMagnitude("pan.keyboard_accel", p.KeyboardAccel),
		checkMagnitude("pan.max_speed", p.MaxSpeed),
		checkMagnitude("pan.idle_deceleration", p.IdleDeceleration),
		checkRange("pan.pan_speed_zoom_factor_range", p.PanSpeedZoomFactorRange),
	)
}

func (t *TurnSettings) Validate() error {
	return errors.Join(
		checkMagnitude("turn.mouse_turn_margin", t.MouseTurnMargin),
		checkRange("turn.yaw_range", t.YawRange),
		checkMagnitude("turn.mouse_accel", t.MouseAccel),
		checkMagnitude("turn.keyboard_accel", t.KeyboardAccel),
		checkMagnitude("turn.max_speed", t.MaxSpeed),
		checkMagnitude("turn.idle_deceleration", t.IdleDeceleration),
	)
}

// Validate checks every record that is set.
func (s *CameraSettings) Validate() error {
	var errs []error
	if s.Zoom != nil {
		errs = append(errs, s.Zoom.Validate())
	}
	if s.Pan != nil {
		errs = append(errs, s.Pan.Validate())
	}
	if s.Turn != nil {
		errs = append(errs, s.Turn.Validate())
	}
	return errors.Join(errs...)
}
