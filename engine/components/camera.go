package components

import (
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

/**
 * @brief For this long after the last scroll event the zoom is treated as
 * still receiving input, so idle deceleration does not throttle scrolling
 * between discrete wheel ticks.
 */
const SCROLL_TICK_GRACE_SECS float64 = 0.05

/**
 * @brief An RTS-style camera orbiting a focus point on the ground. It pans,
 * zooms and turns with momentum. Ideally these are created and managed by
 * the camera system.
 */
type RtsCamera struct {
	/** @brief Where the camera is looking (its target). */
	LookingAt math.Vec3
	/**
	 * @brief The rotation of the camera, rebuilt every update from Yaw and
	 * ZoomDistance.
	 * NOTE: Do not set this directly. Change Yaw or ZoomDistance instead.
	 */
	Rotation math.Quaternion
	/** @brief The accumulated turn angle in radians, kept in [0, 2π). */
	Yaw float32
	/** @brief The velocity at which the camera is zooming in (negative) or out. */
	ZoomVelocity float32
	/** @brief The velocity at which the camera is panning, x right and y forward. */
	PanVelocity math.Vec2
	/** @brief The velocity at which the camera is turning, in radians per second. */
	TurnVelocity float32
	/** @brief Clock time of the last scroll event, in seconds. */
	LastScrollSec float64
	/** @brief The distance between the camera and LookingAt. */
	ZoomDistance float32
}

func NewRtsCamera() *RtsCamera {
	camera := &RtsCamera{}
	camera.Reset()
	return camera
}

func (c *RtsCamera) Reset() {
	c.LookingAt = math.NewVec3Zero()
	c.Rotation = math.NewQuatIdentity()
	c.Yaw = 0
	c.ZoomVelocity = 0
	c.PanVelocity = math.NewVec2Zero()
	c.TurnVelocity = 0
	c.LastScrollSec = 0
	c.ZoomDistance = 10.0
}

// EyePosition is the world position of the camera itself.
func (c *RtsCamera) EyePosition() math.Vec3 {
	return c.LookingAt.Add(c.Rotation.RotateVec3(math.NewVec3(0, 0, c.ZoomDistance)))
}

// Transform places the camera at its eye position with its current rotation.
func (c *RtsCamera) Transform() math.Transform {
	t := math.TransformFromPositionRotation(c.EyePosition(), c.Rotation)
	t.GetLocal()
	return *t
}

/**
 * @brief Advances the camera by one frame. Nil settings fall back to their
 * defaults.
 *
 * @param in The input gathered for this frame.
 * @return False if the frame was skipped because the cursor is outside the
 * window. A skipped frame leaves the camera untouched.
 */
func (c *RtsCamera) Update(in *core.FrameInput, zoom *ZoomSettings, pan *PanSettings, turn *TurnSettings) bool {
	if in == nil || !in.CursorInWindow {
		return false
	}
	if zoom == nil {
		z := NewZoomSettings()
		zoom = &z
	}
	if pan == nil {
		p := NewPanSettings()
		pan = &p
	}
	if turn == nil {
		t := NewTurnSettings()
		turn = &t
	}

	delta := in.DeltaTime
	xDecel, yDecel, turnDecel := newDeceleration(), newDeceleration(), newDeceleration()

	zoomDecel := newDeceleration()
	if in.Now-c.LastScrollSec < SCROLL_TICK_GRACE_SECS {
		zoomDecel = deceleration{}
	}

	c.accumulateMouse(in, pan, turn, &xDecel, &yDecel, &turnDecel)

	keys := &in.Keyboard
	if keys.AnyDown(pan.RightKeys) {
		c.PanVelocity.X += pan.KeyboardAccel * delta
		xDecel.pos = false
	}
	if keys.AnyDown(pan.LeftKeys) {
		c.PanVelocity.X -= pan.KeyboardAccel * delta
		xDecel.neg = false
	}
	if keys.AnyDown(pan.UpKeys) {
		c.PanVelocity.Y += pan.KeyboardAccel * delta
		yDecel.pos = false
	}
	if keys.AnyDown(pan.DownKeys) {
		c.PanVelocity.Y -= pan.KeyboardAccel * delta
		yDecel.neg = false
	}
	if keys.AnyDown(turn.RightKeys) {
		c.TurnVelocity -= turn.KeyboardAccel * delta
		turnDecel.neg = false
	}
	if keys.AnyDown(turn.LeftKeys) {
		c.TurnVelocity += turn.KeyboardAccel * delta
		turnDecel.pos = false
	}

	// Scrolling up zooms in. Wheel ticks are discrete so delta is not applied.
	if y, ok := in.LatestScroll(); ok {
		if y > 0 {
			zoomDecel.neg = false
		} else {
			zoomDecel.pos = false
		}
		c.ZoomVelocity -= y * zoom.ScrollAccel
		c.LastScrollSec = in.Now
	}
	if keys.AnyDown(zoom.ZoomInKeys) {
		c.ZoomVelocity -= zoom.KeyboardAccel * delta
		zoomDecel.neg = false
	}
	if keys.AnyDown(zoom.ZoomOutKeys) {
		c.ZoomVelocity += zoom.KeyboardAccel * delta
		zoomDecel.pos = false
	}

	turnDecel.apply(&c.TurnVelocity, turn.IdleDeceleration, delta)
	zoomDecel.apply(&c.ZoomVelocity, zoom.IdleDeceleration, delta)
	xDecel.apply(&c.PanVelocity.X, pan.IdleDeceleration, delta)
	yDecel.apply(&c.PanVelocity.Y, pan.IdleDeceleration, delta)

	c.clampVelocities(zoom, pan, turn)

	c.ZoomDistance += c.ZoomVelocity * delta
	c.ZoomDistance = zoom.DistanceRange.Clamp(c.ZoomDistance)

	c.rotate(c.TurnVelocity * delta)
	c.Yaw = turn.YawRange.Clamp(c.Yaw)

	// Pitch steepens as the camera closes in.
	pitch := math.LerpInZone(c.ZoomDistance, zoom.AngleChangeZone, zoom.AngleRange)
	c.Rotation = math.NewQuatFromYawPitchRoll(c.Yaw, -pitch, 0)

	// Panning follows the yaw only so the focus stays on the ground plane.
	// The zoom factor is interpolated over AngleRange, not DistanceRange.
	forward := math.NewQuatRotationY(c.Yaw)
	factor := math.LerpInZone(c.ZoomDistance, zoom.AngleRange, pan.PanSpeedZoomFactorRange)
	right := forward.RotateVec3(math.NewVec3Right().MulScalar(c.PanVelocity.X * delta))
	ahead := forward.RotateVec3(math.NewVec3Forward().MulScalar(c.PanVelocity.Y * delta))
	c.LookingAt = c.LookingAt.Add(right.MulScalar(factor)).Add(ahead.MulScalar(factor))

	return true
}

// accumulateMouse applies edge scrolling. The cursor origin is the bottom
// left corner of the window, with y growing upwards.
func (c *RtsCamera) accumulateMouse(in *core.FrameInput, pan *PanSettings, turn *TurnSettings, xDecel, yDecel, turnDecel *deceleration) {
	delta := in.DeltaTime
	cursor := in.Cursor
	turnZone := cursor.Y > in.WindowHeight*(1.0-turn.MouseTurnMargin)

	if cursor.X < pan.MouseAccelMargin {
		if turnZone {
			c.TurnVelocity += turn.MouseAccel * delta
			turnDecel.pos = false
		} else {
			c.PanVelocity.X -= pan.MouseAccel * delta
			xDecel.neg = false
		}
	} else if cursor.X > in.WindowWidth-pan.MouseAccelMargin {
		if turnZone {
			c.TurnVelocity -= turn.MouseAccel * delta
			turnDecel.neg = false
		} else {
			c.PanVelocity.X += pan.MouseAccel * delta
			xDecel.pos = false
		}
	}

	if cursor.Y < pan.MouseAccelMargin {
		c.PanVelocity.Y -= pan.MouseAccel * delta
		yDecel.neg = false
	} else if cursor.Y > in.WindowHeight-pan.MouseAccelMargin {
		c.PanVelocity.Y += pan.MouseAccel * delta
		yDecel.pos = false
	}
}

// clampVelocities caps the pan speed, the outward zoom velocity and the turn
// speed. Inward zoom velocity has no floor.
func (c *RtsCamera) clampVelocities(zoom *ZoomSettings, pan *PanSettings, turn *TurnSettings) {
	c.PanVelocity = c.PanVelocity.ClampLength(pan.MaxSpeed)
	c.ZoomVelocity = min(c.ZoomVelocity, zoom.MaxVelocity)
	c.TurnVelocity = math.Clamp(c.TurnVelocity, -turn.MaxSpeed, turn.MaxSpeed)
}

// rotate turns the camera around its eye by angle radians. Yaw wraps by a
// single turn, so angle must stay within (-2π, 2π).
func (c *RtsCamera) rotate(angle float32) {
	c.Yaw += angle
	if c.Yaw < 0 {
		c.Yaw += math.K_PI_2
	}
	// Also catches a tiny negative yaw rounding up to exactly 2π above.
	if c.Yaw >= math.K_PI_2 {
		c.Yaw -= math.K_PI_2
	}

	eye := c.EyePosition()
	c.LookingAt = math.NewQuatRotationY(angle).RotateVec3(c.LookingAt.Sub(eye)).Add(eye)
}
