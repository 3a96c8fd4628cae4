package cubestudio

import (
	"strings"
)

// Turns is the number of clockwise quarter turns of a move.
type Turns int

const (
	Quarter Turns = 1 // 90 degrees clockwise
	Half    Turns = 2 // 180 degrees
	Prime   Turns = 3 // 270 degrees clockwise, i.e. counter-clockwise
)

// Move is one parsed face turn.
type Move struct {
	Face  Face   `json:"face"`
	Turns Turns  `json:"turns"`
	Token string `json:"token,omitempty"` // literal token as parsed, for display
}

// Notation returns the canonical notation for this move.
// Examples: R, R', R2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turns {
	case Prime:
		suffix = "'"
	case Half:
		suffix = "2"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m. The literal token is not carried.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := Move{Face: m.Face, Turns: m.Turns}
	switch m.Turns {
	case Quarter:
		inv.Turns = Prime
	case Prime:
		inv.Turns = Quarter
	}
	return inv
}

// Equal compares face and turns, ignoring the literal token.
func (m Move) Equal(o Move) bool {
	return m.Face == o.Face && m.Turns == o.Turns
}

// ParseMove parses a single token. The first character must be one of
// U, R, F, D, L, B. The rest of the token is a modifier: if it contains a
// "'" the move is a prime turn, otherwise if it contains a "2" it is a half
// turn, otherwise a quarter turn. Other modifier characters are ignored,
// and "2'" parses as a prime turn.
func ParseMove(token string) (Move, error) {
	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return Move{}, &ParseError{Token: token}
	}

	face := Face(token[0])
	if !face.Valid() {
		return Move{}, &ParseError{Token: token}
	}

	modifier := token[1:]
	turns := Quarter
	switch {
	case strings.Contains(modifier, "'"):
		turns = Prime
	case strings.Contains(modifier, "2"):
		turns = Half
	}

	return Move{Face: face, Turns: turns, Token: token}, nil
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "U R2 F' L"
// Empty input yields an empty sequence. The first bad token aborts the
// whole parse.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, &ParseError{Token: part, Index: i}
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InvertMoves returns the sequence that undoes moves: reversed, each move
// inverted.
func InvertMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}
