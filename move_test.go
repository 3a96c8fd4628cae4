package cubestudio

import (
	"errors"
	"math"
	"testing"
)

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("U R2 F' L")
	if err != nil {
		t.Fatalf("ParseMoves error: %v", err)
	}

	want := []Move{
		{Face: FaceU, Turns: 1},
		{Face: FaceR, Turns: 2},
		{Face: FaceF, Turns: 3},
		{Face: FaceL, Turns: 1},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if !moves[i].Equal(want[i]) {
			t.Errorf("move %d = %+v, want %+v", i, moves[i], want[i])
		}
	}
	if moves[2].Token != "F'" {
		t.Errorf("token not kept: %q", moves[2].Token)
	}
}

func TestParseMovesWhitespace(t *testing.T) {
	moves, err := ParseMoves("  \tR\n\nU'   D2 ")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "R U' D2" {
		t.Errorf("FormatMoves = %q", got)
	}
}

func TestParseMovesEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\t"} {
		moves, err := ParseMoves(s)
		if err != nil {
			t.Errorf("ParseMoves(%q) error: %v", s, err)
		}
		if len(moves) != 0 {
			t.Errorf("ParseMoves(%q) = %v, want empty", s, moves)
		}
	}
}

func TestParseModifierPrecedence(t *testing.T) {
	tests := []struct {
		token string
		turns Turns
	}{
		{"R", Quarter},
		{"R2", Half},
		{"R'", Prime},
		{"R2'", Prime},
		{"R'2", Prime},
		{"Rw", Quarter},
		{"Rw2", Half},
	}
	for _, tt := range tests {
		m, err := ParseMove(tt.token)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.token, err)
			continue
		}
		if m.Turns != tt.turns {
			t.Errorf("ParseMove(%q).Turns = %d, want %d", tt.token, m.Turns, tt.turns)
		}
	}
}

func TestParseRejectsBadFace(t *testing.T) {
	moves, err := ParseMoves("U R X2 F")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if moves != nil {
		t.Errorf("partial result returned: %v", moves)
	}
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("error %v should match ErrInvalidNotation", err)
	}
	var pErr *ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("error %T is not *ParseError", err)
	}
	if pErr.Token != "X2" || pErr.Index != 2 {
		t.Errorf("ParseError = %+v, want token X2 at 2", pErr)
	}

	for _, tok := range []string{"r", "x", "M", "2", "'"} {
		if _, err := ParseMove(tok); err == nil {
			t.Errorf("ParseMove(%q) should fail", tok)
		}
	}
}

func TestInverse(t *testing.T) {
	for _, f := range Faces {
		for _, turns := range []Turns{Quarter, Half, Prime} {
			m := Move{Face: f, Turns: turns}
			if got := m.Inverse().Inverse(); got != m {
				t.Errorf("Inverse(Inverse(%v)) = %v", m, got)
			}
			if m.Inverse().Face != f {
				t.Errorf("Inverse changed face of %v", m)
			}
		}
		half := Move{Face: f, Turns: Half}
		if half.Inverse() != half {
			t.Errorf("%v should be its own inverse", half)
		}
	}
	if RPrime.Inverse() != R || R.Inverse() != RPrime {
		t.Error("R and R' should invert to each other")
	}
}

func TestInvertMoves(t *testing.T) {
	got := FormatMoves(InvertMoves(SexyMove))
	if got != "U R U' R'" {
		t.Errorf("InvertMoves(R U R' U') = %q", got)
	}
}

func TestAxisAngle(t *testing.T) {
	tests := []struct {
		move  Move
		axis  Axis
		angle float64
	}{
		{R, AxisX, math.Pi / 2},
		{B, AxisZ, -math.Pi / 2},
		{U, AxisY, math.Pi / 2},
		{D, AxisY, -math.Pi / 2},
		{L, AxisX, -math.Pi / 2},
		{F, AxisZ, math.Pi / 2},
		{U2, AxisY, math.Pi},
		{LPrime, AxisX, -3 * math.Pi / 2},
	}
	for _, tt := range tests {
		r := AxisAngle(tt.move)
		if r.Axis != tt.axis {
			t.Errorf("AxisAngle(%v).Axis = %v, want %v", tt.move, r.Axis, tt.axis)
		}
		if math.Abs(r.Angle-tt.angle) > 1e-12 {
			t.Errorf("AxisAngle(%v).Angle = %v, want %v", tt.move, r.Angle, tt.angle)
		}
	}
}

func TestDemoSolutionParses(t *testing.T) {
	moves, err := ParseMoves(DemoSolution)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 8 {
		t.Errorf("demo solution has %d moves, want 8", len(moves))
	}
}
