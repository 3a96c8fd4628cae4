package cubestudio

import (
	"errors"
	"testing"
)

func TestValidateSolved(t *testing.T) {
	if err := Validate(NewNet()); err != nil {
		t.Errorf("solved net should be valid: %v", err)
	}
	if v := Check(NewNet()); !v.Valid || v.Error != "" {
		t.Errorf("Check(solved) = %+v", v)
	}
}

func TestValidateOneRepaint(t *testing.T) {
	n := NewNet()
	// F is red when solved.
	n.Set(FaceF, 0, Blue)

	err := Validate(n)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidColorCount) {
		t.Errorf("error %v should match ErrInvalidColorCount", err)
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error %T is not *ValidationError", err)
	}

	counts := map[Color]int{}
	for _, v := range vErr.Violations {
		counts[v.Color] = v.Count
	}
	if len(counts) != 2 {
		t.Errorf("violations = %v, want red and blue only", vErr.Violations)
	}
	if counts[Red] != 8 {
		t.Errorf("red count = %d, want 8", counts[Red])
	}
	if counts[Blue] != 10 {
		t.Errorf("blue count = %d, want 10", counts[Blue])
	}

	if v := Check(n); v.Valid || v.Error == "" {
		t.Errorf("Check should report invalid, got %+v", v)
	}
}

func TestValidatePermutedIsStillValid(t *testing.T) {
	// Swapping two stickers keeps the counts, so the weak check passes even
	// though no real cube looks like this.
	n := NewNet()
	n.Set(FaceU, 0, Yellow)
	n.Set(FaceD, 0, White)
	if err := Validate(n); err != nil {
		t.Errorf("count-preserving swap should pass: %v", err)
	}
}

func TestValidateUnknownColor(t *testing.T) {
	n := NewNet()
	n.Set(FaceL, 4, Unknown)

	var vErr *ValidationError
	if !errors.As(Validate(n), &vErr) {
		t.Fatal("expected *ValidationError")
	}
	found := false
	for _, v := range vErr.Violations {
		if v.Color == Unknown && v.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("unknown color not reported: %v", vErr.Violations)
	}
}
