package components

import (
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/math"
)

const (
	windowWidth  float32 = 1280
	windowHeight float32 = 720
	tolerance    float32 = 1e-4
)

// idleFrame has the cursor resting in the middle of the window and no keys
// held, far enough from the clock origin that no scroll grace applies.
func idleFrame(delta float32, now float64) *core.FrameInput {
	return &core.FrameInput{
		DeltaTime:      delta,
		Now:            now,
		WindowWidth:    windowWidth,
		WindowHeight:   windowHeight,
		Cursor:         math.NewVec2(windowWidth/2, windowHeight/2),
		CursorInWindow: true,
	}
}

func near(a, b float32) bool {
	return math.Abs(a-b) <= tolerance
}

func TestDecelerationApply(t *testing.T) {
	cases := []struct {
		name     string
		decel    deceleration
		velocity float32
		want     float32
	}{
		{"both flags slow positive motion", deceleration{true, true}, 2, 1.5},
		{"both flags slow negative motion", deceleration{true, true}, -2, -1.5},
		{"never overshoots zero", deceleration{true, true}, 0.2, 0},
		{"zero velocity is left alone", deceleration{true, true}, 0, 0},
		{"pos only pushes negative", deceleration{true, false}, 2, 1.5},
		{"pos only pushes negative on negative motion", deceleration{true, false}, -2, -2.5},
		{"neg only pushes positive", deceleration{false, true}, -2, -1.5},
		{"no flags leaves velocity", deceleration{false, false}, 2, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.velocity
			c.decel.apply(&v, 5, 0.1)
			if !near(v, c.want) {
				t.Fatalf("got %v, want %v", v, c.want)
			}
		})
	}
}

func TestUpdateSkipsWithoutCursor(t *testing.T) {
	c := NewRtsCamera()
	c.Update(idleFrame(0.016, 1), nil, nil, nil)
	c.PanVelocity = math.NewVec2(2, 1)
	c.ZoomVelocity = -1
	c.TurnVelocity = 0.5

	before := *c
	transform := c.Transform()

	in := idleFrame(0.016, 1.016)
	in.CursorInWindow = false
	in.Keyboard.Keys[core.KEY_W] = true
	in.Scroll = []core.ScrollEvent{{Y: 3}}

	if c.Update(in, nil, nil, nil) {
		t.Fatalf("update must report a skipped frame")
	}
	if *c != before {
		t.Fatalf("state changed on a skipped frame: %+v != %+v", *c, before)
	}
	if c.Transform() != transform {
		t.Fatalf("transform changed on a skipped frame")
	}
}

func TestPitchFollowsZoomDistance(t *testing.T) {
	zoom := NewZoomSettings()
	zoom.AngleRange = math.NewRange(0.57, 1.16)
	zoom.AngleChangeZone = math.NewRange(5, 100)

	cases := []struct {
		distance float32
		want     float32
	}{
		{50, 0.57 + (50-5)/(100-5.0)*(1.16-0.57)},
		{5, 0.57},
		{100, 1.16},
	}
	for _, tc := range cases {
		c := NewRtsCamera()
		c.ZoomDistance = tc.distance
		// A zero delta leaves every velocity and position untouched.
		c.Update(idleFrame(0, 10), &zoom, nil, nil)

		q := c.Rotation
		pitch := float32(-2 * gomath.Atan2(float64(q.X), float64(q.W)))
		if !near(pitch, tc.want) {
			t.Fatalf("distance %v: pitch %v, want %v", tc.distance, pitch, tc.want)
		}
		if q.Y != 0 || q.Z != 0 {
			t.Fatalf("yaw 0 must give a pure pitch rotation, got %+v", q)
		}
	}
}

func TestClampVelocities(t *testing.T) {
	zoom, pan, turn := NewZoomSettings(), NewPanSettings(), NewTurnSettings()

	c := NewRtsCamera()
	c.PanVelocity = math.NewVec2(10, 0)
	c.ZoomVelocity = -3
	c.TurnVelocity = -4
	c.clampVelocities(&zoom, &pan, &turn)

	if !c.PanVelocity.Compare(math.NewVec2(5, 0), tolerance) {
		t.Fatalf("pan velocity: got %+v, want (5, 0)", c.PanVelocity)
	}
	if c.ZoomVelocity != -3 {
		t.Fatalf("inward zoom velocity is not capped, got %v", c.ZoomVelocity)
	}
	if c.TurnVelocity != -1.5 {
		t.Fatalf("turn velocity: got %v, want -1.5", c.TurnVelocity)
	}

	c.PanVelocity = math.NewVec2(3, 4.5)
	c.ZoomVelocity = 8
	c.clampVelocities(&zoom, &pan, &turn)
	if !near(c.PanVelocity.Length(), 5) || !near(c.PanVelocity.Y/c.PanVelocity.X, 1.5) {
		t.Fatalf("pan velocity lost its direction: %+v", c.PanVelocity)
	}
	if c.ZoomVelocity != 5 {
		t.Fatalf("outward zoom velocity: got %v, want 5", c.ZoomVelocity)
	}

	c.PanVelocity = math.NewVec2Zero()
	c.clampVelocities(&zoom, &pan, &turn)
	if c.PanVelocity != math.NewVec2Zero() {
		t.Fatalf("zero pan velocity must stay zero, got %+v", c.PanVelocity)
	}
}

func TestYawWrap(t *testing.T) {
	cases := []struct {
		name  string
		yaw   float32
		angle float32
		want  float32
	}{
		{"above a full turn", 6.2, 0.2, 6.2 + 0.2 - math.K_PI_2},
		{"below zero", 0.1, -0.3, 0.1 - 0.3 + math.K_PI_2},
		{"inside the circle", 1, 0.5, 1.5},
		{"exactly a full turn", math.K_PI, math.K_PI, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewRtsCamera()
			c.Yaw = tc.yaw
			c.rotate(tc.angle)
			if !near(c.Yaw, tc.want) {
				t.Fatalf("got %v, want %v", c.Yaw, tc.want)
			}
			if c.Yaw < 0 || c.Yaw >= math.K_PI_2 {
				t.Fatalf("yaw %v left [0, 2π)", c.Yaw)
			}
		})
	}
}

func TestRotateTurnsFocusAroundEye(t *testing.T) {
	c := NewRtsCamera()
	eye := c.EyePosition()
	c.rotate(math.K_HALF_PI)

	if !c.LookingAt.Compare(math.NewVec3(-10, 0, 10), tolerance) {
		t.Fatalf("focus: got %+v", c.LookingAt)
	}
	if !near(c.LookingAt.Distance(eye), 10) {
		t.Fatalf("turning must keep the focus at the zoom distance from the eye")
	}
}

func TestScrollGraceWindow(t *testing.T) {
	c := NewRtsCamera()
	const delta float32 = 0.01

	in := idleFrame(delta, 1.0)
	in.Scroll = []core.ScrollEvent{{Y: 1}}
	c.Update(in, nil, nil, nil)

	scrolled := c.ZoomVelocity
	if scrolled >= 0 {
		t.Fatalf("scrolling up zooms in, got velocity %v", scrolled)
	}
	if c.LastScrollSec != 1.0 {
		t.Fatalf("last scroll time: got %v", c.LastScrollSec)
	}

	for _, now := range []float64{1.02, 1.04} {
		c.Update(idleFrame(delta, now), nil, nil, nil)
		if c.ZoomVelocity != scrolled {
			t.Fatalf("at %v: zoom decelerated inside the grace window (%v != %v)", now, c.ZoomVelocity, scrolled)
		}
	}

	c.Update(idleFrame(delta, 1.06), nil, nil, nil)
	if !near(c.ZoomVelocity, scrolled+5*delta) {
		t.Fatalf("zoom should decelerate after the grace window: got %v, want %v", c.ZoomVelocity, scrolled+5*delta)
	}
}

func TestDecelerationIsMonotonic(t *testing.T) {
	c := NewRtsCamera()
	c.PanVelocity = math.NewVec2(3, -2)
	c.ZoomVelocity = 2
	c.TurnVelocity = -1

	velocities := func() []float32 {
		return []float32{c.PanVelocity.X, c.PanVelocity.Y, c.ZoomVelocity, c.TurnVelocity}
	}

	prev := velocities()
	now := 10.0
	for frame := 0; frame < 120; frame++ {
		now += 1.0 / 60.0
		c.Update(idleFrame(1.0/60.0, now), nil, nil, nil)
		cur := velocities()
		for i := range cur {
			switch {
			case prev[i] == 0:
				if cur[i] != 0 {
					t.Fatalf("frame %d axis %d: velocity left zero (%v)", frame, i, cur[i])
				}
			case math.Abs(cur[i]) >= math.Abs(prev[i]):
				t.Fatalf("frame %d axis %d: |%v| did not decrease from |%v|", frame, i, cur[i], prev[i])
			case cur[i]*prev[i] < 0:
				t.Fatalf("frame %d axis %d: velocity overshot zero", frame, i)
			}
		}
		prev = cur
	}
	for i, v := range prev {
		if v != 0 {
			t.Fatalf("axis %d did not come to rest: %v", i, v)
		}
	}
}

func TestSteadyStateWithoutInput(t *testing.T) {
	c := NewRtsCamera()
	c.LookingAt = math.NewVec3(4, 0, -7)
	c.Yaw = 1.2
	c.Update(idleFrame(0.016, 5), nil, nil, nil)
	before := *c

	now := 5.0
	for i := 0; i < 30; i++ {
		now += 0.016
		c.Update(idleFrame(0.016, now), nil, nil, nil)
	}

	if !c.LookingAt.Compare(before.LookingAt, tolerance) {
		t.Fatalf("focus drifted: %+v -> %+v", before.LookingAt, c.LookingAt)
	}
	if !c.Rotation.Compare(before.Rotation, tolerance) || c.Yaw != before.Yaw || c.ZoomDistance != before.ZoomDistance {
		t.Fatalf("camera moved without input")
	}
}

func TestEdgeZones(t *testing.T) {
	cases := []struct {
		name   string
		cursor math.Vec2
		panX   int
		panY   int
		turn   int
	}{
		{"left edge pans left", math.NewVec2(5, 360), -1, 0, 0},
		{"right edge pans right", math.NewVec2(1275, 360), 1, 0, 0},
		{"top left corner turns left", math.NewVec2(5, 600), 0, 0, 1},
		{"top right corner turns right", math.NewVec2(1275, 600), 0, 0, -1},
		{"bottom edge pans back", math.NewVec2(640, 5), 0, -1, 0},
		{"top edge pans forward", math.NewVec2(640, 715), 0, 1, 0},
		{"top right corner also pans forward", math.NewVec2(1275, 715), 0, 1, -1},
		{"centre does nothing", math.NewVec2(640, 360), 0, 0, 0},
	}
	sign := func(v float32) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewRtsCamera()
			in := idleFrame(0.016, 10)
			in.Cursor = tc.cursor
			c.Update(in, nil, nil, nil)

			if sign(c.PanVelocity.X) != tc.panX || sign(c.PanVelocity.Y) != tc.panY || sign(c.TurnVelocity) != tc.turn {
				t.Fatalf("got pan %+v turn %v", c.PanVelocity, c.TurnVelocity)
			}
		})
	}
}

func TestKeyboardPanFollowsYaw(t *testing.T) {
	c := NewRtsCamera()
	c.Yaw = math.K_HALF_PI

	in := idleFrame(0.1, 10)
	in.Keyboard.Keys[core.KEY_D] = true
	c.Update(in, nil, nil, nil)

	if c.PanVelocity.X <= 0 {
		t.Fatalf("right key must pan right, got %+v", c.PanVelocity)
	}
	// Turned a quarter left, camera-right points down -z.
	if !near(c.LookingAt.X, 0) || !near(c.LookingAt.Y, 0) || c.LookingAt.Z >= 0 {
		t.Fatalf("focus moved the wrong way: %+v", c.LookingAt)
	}
}

// The pan factor is interpolated from the zoom distance over the zoom angle
// range, so at every default distance the focus moves at twice the velocity.
func TestKeyboardPanDistanceFactor(t *testing.T) {
	zoom := NewZoomSettings()
	zoom.DistanceRange = math.NewRange(0.1, 100)
	mid := (zoom.AngleRange.Min + zoom.AngleRange.Max) / 2

	cases := []struct {
		name     string
		distance float32
		wantX    float32
	}{
		{"default distance", 10, 0.2},
		{"far", 100, 0.2},
		{"middle of the angle range", mid, 0.15},
		{"below the angle range", 0.5, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewRtsCamera()
			c.ZoomDistance = tc.distance

			in := idleFrame(0.1, 10)
			in.Keyboard.Keys[core.KEY_D] = true
			c.Update(in, &zoom, nil, nil)

			// 5 * 0.1 from the key, then the same again from the
			// deceleration still allowed to push positive.
			if !near(c.PanVelocity.X, 1) || c.PanVelocity.Y != 0 {
				t.Fatalf("pan velocity: got %+v, want [1, 0]", c.PanVelocity)
			}
			if !near(c.LookingAt.X, tc.wantX) || !near(c.LookingAt.Y, 0) || !near(c.LookingAt.Z, 0) {
				t.Fatalf("focus: got %+v, want x %v", c.LookingAt, tc.wantX)
			}
		})
	}
}

func TestZoomKeysAndScroll(t *testing.T) {
	c := NewRtsCamera()
	in := idleFrame(0.1, 10)
	in.Keyboard.Keys[core.KEY_PLUS] = true
	c.Update(in, nil, nil, nil)
	if c.ZoomVelocity >= 0 || c.ZoomDistance >= 10 {
		t.Fatalf("zoom in key: velocity %v distance %v", c.ZoomVelocity, c.ZoomDistance)
	}

	c = NewRtsCamera()
	in = idleFrame(0.1, 10)
	in.Scroll = []core.ScrollEvent{{Y: 2}, {Y: -3}}
	c.Update(in, nil, nil, nil)
	if c.ZoomVelocity != 5 {
		t.Fatalf("latest scroll zooms out at the capped velocity, got %v", c.ZoomVelocity)
	}
	if !near(c.ZoomDistance, 10.5) {
		t.Fatalf("distance: got %v, want 10.5", c.ZoomDistance)
	}
}

func TestNilSettingsUseDefaults(t *testing.T) {
	zoom, pan, turn := NewZoomSettings(), NewPanSettings(), NewTurnSettings()
	a, b := NewRtsCamera(), NewRtsCamera()

	now := 10.0
	for i := 0; i < 20; i++ {
		now += 0.02
		in := idleFrame(0.02, now)
		in.Cursor = math.NewVec2(3, 100)
		in.Keyboard.Keys[core.KEY_E] = true
		in.Keyboard.Keys[core.KEY_MINUS] = true
		a.Update(in, nil, nil, nil)
		b.Update(in, &zoom, &pan, &turn)
	}
	if *a != *b {
		t.Fatalf("nil settings diverged from defaults: %+v != %+v", *a, *b)
	}
}

func TestClampInvariantsHoldUnderRandomInput(t *testing.T) {
	zoom, pan, turn := NewZoomSettings(), NewPanSettings(), NewTurnSettings()
	r := rand.New(rand.NewPCG(7, 11))
	keys := []core.KeyCode{
		core.KEY_W, core.KEY_A, core.KEY_S, core.KEY_D, core.KEY_Q, core.KEY_E,
		core.KEY_PLUS, core.KEY_MINUS, core.KEY_LEFT, core.KEY_RIGHT,
	}

	c := NewRtsCamera()
	now := 0.0
	for frame := 0; frame < 5000; frame++ {
		delta := r.Float32() * 0.1
		now += float64(delta)
		in := idleFrame(delta, now)
		in.Cursor = math.NewVec2(r.Float32()*windowWidth, r.Float32()*windowHeight)
		for _, k := range keys {
			in.Keyboard.Keys[k] = r.IntN(4) == 0
		}
		if r.IntN(10) == 0 {
			in.Scroll = []core.ScrollEvent{{Y: float32(r.IntN(7) - 3)}}
		}
		c.Update(in, &zoom, &pan, &turn)

		if !zoom.DistanceRange.Contains(c.ZoomDistance) {
			t.Fatalf("frame %d: zoom distance %v", frame, c.ZoomDistance)
		}
		if c.Yaw < 0 || c.Yaw >= math.K_PI_2 || !turn.YawRange.Contains(c.Yaw) {
			t.Fatalf("frame %d: yaw %v", frame, c.Yaw)
		}
		if c.PanVelocity.Length() > pan.MaxSpeed+tolerance {
			t.Fatalf("frame %d: pan speed %v", frame, c.PanVelocity.Length())
		}
		if c.ZoomVelocity > zoom.MaxVelocity {
			t.Fatalf("frame %d: zoom velocity %v", frame, c.ZoomVelocity)
		}
		if math.Abs(c.TurnVelocity) > turn.MaxSpeed {
			t.Fatalf("frame %d: turn velocity %v", frame, c.TurnVelocity)
		}
	}
}

func TestTransformPlacesEye(t *testing.T) {
	c := NewRtsCamera()
	c.LookingAt = math.NewVec3(1, 0, 2)
	c.Yaw = 0.7
	c.Update(idleFrame(0, 10), nil, nil, nil)

	tr := c.Transform()
	eye := c.EyePosition()
	if !tr.Local.Translation().Compare(eye, tolerance) {
		t.Fatalf("translation %+v, eye %+v", tr.Local.Translation(), eye)
	}
	if !near(eye.Distance(c.LookingAt), c.ZoomDistance) {
		t.Fatalf("eye must sit zoom distance away from the focus")
	}
	if eye.Y <= 0 {
		t.Fatalf("a pitched camera looks down on the focus, eye %+v", eye)
	}
}
