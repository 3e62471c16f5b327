package components

import "github.com/spaghettifunk/rtscam/engine/math"

// deceleration records, for one velocity axis, which directions of motion
// idle deceleration may act against this frame. Input pushing the velocity
// in a direction clears the flag for that direction.
type deceleration struct {
	pos bool
	neg bool
}

func newDeceleration() deceleration {
	return deceleration{pos: true, neg: true}
}

// apply moves velocity by at most |magnitude * delta|, never past zero.
func (d deceleration) apply(velocity *float32, magnitude, delta float32) {
	if *velocity == 0 {
		return
	}

	var sign float32
	switch {
	case d.pos && d.neg:
		sign = -1
		if *velocity < 0 {
			sign = 1
		}
	case d.pos:
		sign = -1
	case d.neg:
		sign = 1
	default:
		return
	}

	step := min(math.Abs(magnitude*delta), math.Abs(*velocity))
	*velocity += step * sign
}
