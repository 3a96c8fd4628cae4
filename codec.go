package cubestudio

// StateLength is the length of a state string: 6 faces of 9 facelets.
const StateLength = 54

// placeholder marks an unencodable facelet in Encode's debug output.
const placeholder = '?'

// Encode flattens a net into the 54-character state string. Faces are
// written in U, R, F, D, L, B order and each facelet becomes the letter of
// the face its color is bound to.
//
// Facelets outside the palette are written as '?' and reported in an
// *EncodingError. The string is still returned for display, but must not
// be sent to a solver.
func Encode(n Net) (string, error) {
	buf := make([]byte, 0, StateLength)
	var bad *EncodingError

	for slot, face := range Faces {
		for i, c := range n.Facelets[slot] {
			f, ok := c.Face()
			if !ok {
				if bad == nil {
					bad = &EncodingError{}
				}
				bad.Facelets = append(bad.Facelets, Facelet{Face: face, Index: i})
				bad.Colors = append(bad.Colors, c)
				buf = append(buf, placeholder)
				continue
			}
			buf = append(buf, byte(f))
		}
	}

	if bad != nil {
		return string(buf), bad
	}
	return string(buf), nil
}

// Decode expands a state string into a net. Positions holding anything but
// a face letter, or lying past the end of a short string, become Unknown and
// are reported in a *DecodingError; a string longer than 54 is also an
// error. The net is always fully populated so it can be shown, but callers
// must not commit it when err != nil.
func Decode(s string) (Net, error) {
	var n Net
	var bad []int

	for idx := 0; idx < StateLength; idx++ {
		slot, i := idx/9, idx%9
		if idx >= len(s) {
			n.Facelets[slot][i] = Unknown
			bad = append(bad, idx)
			continue
		}
		f := Face(s[idx])
		if !f.Valid() {
			n.Facelets[slot][i] = Unknown
			bad = append(bad, idx)
			continue
		}
		n.Facelets[slot][i] = SolvedColor(f)
	}

	if len(bad) > 0 || len(s) != StateLength {
		return n, &DecodingError{Length: len(s), Positions: bad}
	}
	return n, nil
}

// SolvedState is the state string of the solved net.
const SolvedState = "UUUUUUUUU" + "RRRRRRRRR" + "FFFFFFFFF" + "DDDDDDDDD" + "LLLLLLLLL" + "BBBBBBBBB"
