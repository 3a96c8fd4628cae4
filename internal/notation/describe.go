// Package notation turns move sequences into plain-language steps and
// finds wasted turns in them.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubestudio"
)

// Describe returns a plain-language description of a move, as read by
// someone holding the cube with White on top and Red in front.
//
//	R  -> "right up"          R' -> "right down"
//	L  -> "left down"         L' -> "left up"
//	U  -> "top turn left"     U' -> "top turn right"
//	D  -> "bottom turn right" D' -> "bottom turn left"
//	F  -> "front clockwise"   F' -> "front anti-clockwise"
//	B  -> "back clockwise"    B' -> "back anti-clockwise"
//
// Half turns append " x 2" to the quarter-turn description.
func Describe(m cubestudio.Move) string {
	var cw, ccw string
	switch m.Face {
	case cubestudio.FaceR:
		cw, ccw = "right up", "right down"
	case cubestudio.FaceL:
		cw, ccw = "left down", "left up"
	case cubestudio.FaceU:
		cw, ccw = "top turn left", "top turn right"
	case cubestudio.FaceD:
		cw, ccw = "bottom turn right", "bottom turn left"
	case cubestudio.FaceF:
		cw, ccw = "front clockwise", "front anti-clockwise"
	case cubestudio.FaceB:
		cw, ccw = "back clockwise", "back anti-clockwise"
	default:
		return m.Notation()
	}

	switch m.Turns {
	case cubestudio.Quarter:
		return cw
	case cubestudio.Prime:
		return ccw
	case cubestudio.Half:
		return cw + " x 2"
	}
	return m.Notation()
}

// DescribeSequence describes each move.
func DescribeSequence(moves []cubestudio.Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = Describe(m)
	}
	return result
}

// FormatDescribed joins the descriptions with commas.
func FormatDescribed(moves []cubestudio.Move) string {
	return strings.Join(DescribeSequence(moves), ", ")
}
