package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f > high {
		return high
	}
	if f < low {
		return low
	}
	return f
}

// NewRange creates an inclusive range.
func NewRange(min, max float32) Range {
	return Range{Min: min, Max: max}
}

// Clamp returns v limited to the range bounds.
func (r Range) Clamp(v float32) float32 {
	return Clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Width returns Max - Min.
func (r Range) Width() float32 {
	return r.Max - r.Min
}

// IsInverted reports whether Min is greater than Max.
func (r Range) IsInverted() bool {
	return r.Min > r.Max
}

// LerpInZone clamps value into zone, then maps its position within zone
// linearly onto values. A zone of zero width maps to values.Min.
func LerpInZone(value float32, zone, values Range) float32 {
	inZone := zone.Clamp(value)
	width := zone.Width()
	if width == 0 {
		return values.Min
	}
	normalised := (inZone - zone.Min) / width
	return normalised*values.Width() + values.Min
}

// Abs returns the absolute value of a signed number.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
