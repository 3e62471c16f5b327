package math

import (
	m "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance float32 = 1e-5

func toMgl(q Quaternion) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func fromMgl(q mgl32.Quat) Quaternion {
	return Quaternion{q.V[0], q.V[1], q.V[2], q.W}
}

func TestQuaternionMatchesReference(t *testing.T) {
	cases := []struct {
		name  string
		axis  Vec3
		angle float32
	}{
		{"yaw_quarter", NewVec3Up(), K_HALF_PI},
		{"pitch_negative", NewVec3Right(), -0.8536},
		{"roll", Vec3{0, 0, 1}, 2.5},
		{"zero", NewVec3Up(), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NewQuatFromAxisAngle(c.axis, c.angle, false)
			want := fromMgl(mgl32.QuatRotate(c.angle, mgl32.Vec3{c.axis.X, c.axis.Y, c.axis.Z}))
			if !got.Compare(want, tolerance) {
				t.Fatalf("axis-angle mismatch: got %+v, want %+v", got, want)
			}

			v := Vec3{1, 2, 3}
			rotated := got.RotateVec3(v)
			ref := toMgl(got).Rotate(mgl32.Vec3{v.X, v.Y, v.Z})
			if !rotated.Compare(Vec3{ref[0], ref[1], ref[2]}, tolerance) {
				t.Fatalf("rotate mismatch: got %+v, want %v", rotated, ref)
			}

			mat := got.ToMat4()
			refMat := toMgl(got).Mat4()
			for i := range refMat {
				if kabs(mat.Data[i]-refMat[i]) > tolerance {
					t.Fatalf("matrix element %d: got %f, want %f", i, mat.Data[i], refMat[i])
				}
			}
		})
	}
}

func TestQuaternionMulMatchesReference(t *testing.T) {
	a := NewQuatRotationY(1.2)
	b := NewQuatRotationX(-0.6)
	got := a.Mul(b)
	want := fromMgl(toMgl(a).Mul(toMgl(b)))
	if !got.Compare(want, tolerance) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	ypr := NewQuatFromYawPitchRoll(1.2, -0.6, 0)
	if !ypr.Compare(got, tolerance) {
		t.Fatalf("yaw-pitch-roll %+v differs from composed %+v", ypr, got)
	}
}

func TestTransformLocalMatchesReference(t *testing.T) {
	rot := NewQuatFromYawPitchRoll(0.3, -1.1, 0)
	pos := Vec3{4, 5, -6}
	tr := TransformFromPositionRotation(pos, rot)
	local := tr.GetLocal()

	want := mgl32.Translate3D(pos.X, pos.Y, pos.Z).Mul4(toMgl(rot).Mat4())
	for i := range want {
		if kabs(local.Data[i]-want[i]) > tolerance {
			t.Fatalf("element %d: got %f, want %f", i, local.Data[i], want[i])
		}
	}
	if tr.IsDirty {
		t.Fatalf("transform should be clean after GetLocal")
	}
	if got := local.Translation(); !got.Compare(pos, tolerance) {
		t.Fatalf("translation: got %+v, want %+v", got, pos)
	}

	tr.SetPosition(NewVec3Zero())
	if !tr.IsDirty {
		t.Fatalf("SetPosition should mark the transform dirty")
	}
	if got := tr.GetLocal().Translation(); !got.Compare(NewVec3Zero(), tolerance) {
		t.Fatalf("translation after reset: got %+v", got)
	}
}

func TestVec2ClampLength(t *testing.T) {
	cases := []struct {
		name string
		in   Vec2
		max  float32
		want Vec2
	}{
		{"over_limit", Vec2{10, 0}, 5, Vec2{5, 0}},
		{"diagonal", Vec2{3, 4}, 2.5, Vec2{1.5, 2}},
		{"under_limit", Vec2{1, 1}, 5, Vec2{1, 1}},
		{"zero", Vec2{}, 5, Vec2{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.in.ClampLength(c.max)
			if !got.Compare(c.want, tolerance) {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
			if m.IsNaN(float64(got.X)) || m.IsNaN(float64(got.Y)) {
				t.Fatalf("NaN in result %+v", got)
			}
		})
	}
}

func TestLerpInZone(t *testing.T) {
	zone := NewRange(5, 100)
	angles := NewRange(0.57, 1.16)

	cases := []struct {
		name  string
		value float32
		want  float32
	}{
		{"inside", 50, 0.57 + (50-5)/(100-5.0)*(1.16-0.57)},
		{"below", 1, 0.57},
		{"above", 500, 1.16},
		{"at_min", 5, 0.57},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LerpInZone(c.value, zone, angles); kabs(got-c.want) > tolerance {
				t.Fatalf("got %f, want %f", got, c.want)
			}
		})
	}

	t.Run("degenerate_zone", func(t *testing.T) {
		got := LerpInZone(7, NewRange(3, 3), angles)
		if got != angles.Min {
			t.Fatalf("got %f, want %f", got, angles.Min)
		}
	})
}

func TestClamp(t *testing.T) {
	if got := Clamp(7, 1, 5); got != 5 {
		t.Fatalf("int clamp: got %d", got)
	}
	if got := Clamp[float32](-2, 0, 1); got != 0 {
		t.Fatalf("float clamp: got %f", got)
	}
	r := NewRange(0, K_PI_2)
	if !r.Contains(r.Clamp(7)) {
		t.Fatalf("clamped value outside range")
	}
	if NewRange(2, 1).IsInverted() != true {
		t.Fatalf("expected inverted range")
	}
}
