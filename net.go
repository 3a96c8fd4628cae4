package cubestudio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Net is the unfolded coloring of a cube. Each face has 9 facelets indexed
// row-major as seen looking straight at that face:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Faces are stored in notation order (U, R, F, D, L, B).
type Net struct {
	// Facelets[slot][position] = color
	Facelets [6][9]Color
}

// NewNet returns the solved coloring: every face uniform in its bound color.
func NewNet() Net {
	var n Net
	for slot, face := range Faces {
		color := SolvedColor(face)
		for i := 0; i < 9; i++ {
			n.Facelets[slot][i] = color
		}
	}
	return n
}

// Face returns the 9 facelets of a face.
func (n Net) Face(f Face) [9]Color {
	slot := f.slot()
	if slot < 0 {
		return [9]Color{}
	}
	return n.Facelets[slot]
}

// At returns the color of one facelet.
func (n Net) At(f Face, index int) (Color, error) {
	if err := checkFacelet(f, index); err != nil {
		return Unknown, err
	}
	return n.Facelets[f.slot()][index], nil
}

// Set replaces one facelet. Only the coordinates are checked.
func (n *Net) Set(f Face, index int, c Color) error {
	if err := checkFacelet(f, index); err != nil {
		return err
	}
	n.Facelets[f.slot()][index] = c
	return nil
}

func checkFacelet(f Face, index int) error {
	if !f.Valid() {
		return fmt.Errorf("%w: face %q", ErrInvalidFacelet, byte(f))
	}
	if index < 0 || index > 8 {
		return fmt.Errorf("%w: %s[%d]", ErrInvalidFacelet, f, index)
	}
	return nil
}

// IsSolved returns true if every face is uniform in its bound color.
func (n Net) IsSolved() bool {
	return n == NewNet()
}

// String renders the net as text with U above and D below the L F R B row.
func (n Net) String() string {
	var b strings.Builder

	row := func(f Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(n.Facelets[f.slot()][r*3+col].String())
			b.WriteByte(' ')
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(FaceU, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			row(f, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(FaceD, r)
		b.WriteByte('\n')
	}

	return b.String()
}

// MarshalJSON encodes the net as {"U": [...9 colors], "R": [...], ...}.
func (n Net) MarshalJSON() ([]byte, error) {
	m := make(map[Face][9]Color, 6)
	for slot, f := range Faces {
		m[f] = n.Facelets[slot]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the MarshalJSON form. All six faces are required.
func (n *Net) UnmarshalJSON(data []byte) error {
	var m map[Face][9]Color
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Net
	for slot, f := range Faces {
		facelets, ok := m[f]
		if !ok {
			return fmt.Errorf("%w: face %s missing", ErrInvalidFacelet, f)
		}
		out.Facelets[slot] = facelets
	}
	*n = out
	return nil
}
