package cubestudio

import (
	"fmt"
	"math"
)

// Axis is a rotation axis in a right-handed frame: +X right, +Y up,
// +Z toward the viewer.
type Axis byte

const (
	AxisX Axis = 'X'
	AxisY Axis = 'Y'
	AxisZ Axis = 'Z'
)

func (a Axis) String() string {
	return string(a)
}

// Vector returns the unit vector of the axis.
func (a Axis) Vector() (x, y, z float64) {
	switch a {
	case AxisX:
		return 1, 0, 0
	case AxisY:
		return 0, 1, 0
	case AxisZ:
		return 0, 0, 1
	}
	return 0, 0, 0
}

// MarshalText encodes the axis letter.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte{byte(a)}, nil
}

// UnmarshalText decodes an axis letter.
func (a *Axis) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("invalid axis %q", b)
	}
	switch v := Axis(b[0]); v {
	case AxisX, AxisY, AxisZ:
		*a = v
		return nil
	}
	return fmt.Errorf("invalid axis %q", b)
}

// Rotation is the axis and signed angle a renderer turns a layer by.
type Rotation struct {
	Axis  Axis    `json:"axis"`
	Angle float64 `json:"angle"` // radians
}

// Normal returns the outward unit normal of the face, as integer
// coordinates on the cubie grid.
func (f Face) Normal() (x, y, z int) {
	switch f {
	case FaceU:
		return 0, 1, 0
	case FaceD:
		return 0, -1, 0
	case FaceR:
		return 1, 0, 0
	case FaceL:
		return -1, 0, 0
	case FaceF:
		return 0, 0, 1
	case FaceB:
		return 0, 0, -1
	}
	return 0, 0, 0
}

// axisSign is the fixed face -> (axis, sign) table. Renderers depend on it
// to turn layers in the expected direction.
func axisSign(f Face) (Axis, float64) {
	switch f {
	case FaceU:
		return AxisY, 1
	case FaceD:
		return AxisY, -1
	case FaceL:
		return AxisX, -1
	case FaceR:
		return AxisX, 1
	case FaceF:
		return AxisZ, 1
	case FaceB:
		return AxisZ, -1
	}
	return AxisY, 0
}

// AxisAngle returns the rotation for a move: angle = π/2 · turns · sign.
func AxisAngle(m Move) Rotation {
	axis, sign := axisSign(m.Face)
	return Rotation{
		Axis:  axis,
		Angle: math.Pi / 2 * float64(m.Turns) * sign,
	}
}
