package cubestudio

import (
	"fmt"
	"strings"
)

// Face identifies one side of the cube. The value doubles as the face's
// letter in move notation and in the 54-character state string.
type Face byte

const (
	FaceU Face = 'U' // Up
	FaceR Face = 'R' // Right
	FaceF Face = 'F' // Front
	FaceD Face = 'D' // Down
	FaceL Face = 'L' // Left
	FaceB Face = 'B' // Back
)

// Faces lists the faces in notation order (U, R, F, D, L, B).
var Faces = [6]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// slot returns the face's position in Faces, or -1.
func (f Face) slot() int {
	switch f {
	case FaceU:
		return 0
	case FaceR:
		return 1
	case FaceF:
		return 2
	case FaceD:
		return 3
	case FaceL:
		return 4
	case FaceB:
		return 5
	default:
		return -1
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f.slot() >= 0
}

func (f Face) String() string {
	if !f.Valid() {
		return "?"
	}
	return string(f)
}

// Name returns the long name of the face ("Up", "Right", ...).
func (f Face) Name() string {
	switch f {
	case FaceU:
		return "Up"
	case FaceR:
		return "Right"
	case FaceF:
		return "Front"
	case FaceD:
		return "Down"
	case FaceL:
		return "Left"
	case FaceB:
		return "Back"
	default:
		return "Unknown"
	}
}

// ParseFace parses a face letter.
func ParseFace(s string) (Face, error) {
	if len(s) == 1 {
		if f := Face(s[0]); f.Valid() {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFace, s)
}

// Color is a facelet color. The palette is closed: each of the six colors
// is bound to exactly one face, and Unknown is never valid net content.
type Color byte

const (
	Unknown Color = iota
	White         // Up face when solved
	Blue          // Right face when solved
	Red           // Front face when solved
	Yellow        // Down face when solved
	Green         // Left face when solved
	Orange        // Back face when solved
)

// Palette lists the six colors in face order (U, R, F, D, L, B).
var Palette = [6]Color{White, Blue, Red, Yellow, Green, Orange}

// Valid reports whether c is one of the six palette colors.
func (c Color) Valid() bool {
	return c >= White && c <= Orange
}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Orange:
		return "orange"
	default:
		return "unknown"
	}
}

// Hex returns the display color used by the editor front-ends.
func (c Color) Hex() string {
	switch c {
	case White:
		return "#FFFFFF"
	case Blue:
		return "#0066FF"
	case Red:
		return "#FF3333"
	case Yellow:
		return "#FFD700"
	case Green:
		return "#00AA00"
	case Orange:
		return "#FF8800"
	default:
		return "#000000"
	}
}

// Face returns the face the color is bound to. ok is false for colors
// outside the palette.
func (c Color) Face() (f Face, ok bool) {
	if !c.Valid() {
		return 0, false
	}
	return Faces[c-White], true
}

// SolvedColor returns the color bound to a face.
func SolvedColor(f Face) Color {
	i := f.slot()
	if i < 0 {
		return Unknown
	}
	return Palette[i]
}

// ParseColor accepts a color name ("red"), a single color letter ("R") or a
// hex code ("#FF3333"). Face letters are not accepted: "B" means blue.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	for _, c := range Palette {
		if strings.EqualFold(s, c.Name()) || strings.EqualFold(s, c.String()) || strings.EqualFold(s, c.Hex()) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

// UnmarshalText decodes a color accepted by ParseColor. "unknown" decodes
// to Unknown so snapshots round-trip.
func (c *Color) UnmarshalText(b []byte) error {
	if strings.EqualFold(string(b), Unknown.Name()) {
		*c = Unknown
		return nil
	}
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText encodes the face by letter.
func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFace, f)
	}
	return []byte{byte(f)}, nil
}

// UnmarshalText decodes a face letter.
func (f *Face) UnmarshalText(b []byte) error {
	parsed, err := ParseFace(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
