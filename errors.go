package cubestudio

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the cubestudio package.
var (
	// Net and palette errors
	ErrUnknownFace       = errors.New("cubestudio: unknown face")
	ErrUnknownColor      = errors.New("cubestudio: unknown color")
	ErrInvalidFacelet    = errors.New("cubestudio: invalid facelet")
	ErrInvalidColorCount = errors.New("cubestudio: invalid color count")

	// Codec errors
	ErrEncoding = errors.New("cubestudio: facelet color outside palette")
	ErrDecoding = errors.New("cubestudio: invalid state notation")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubestudio: invalid move notation")

	// Playback errors
	ErrNotAnimating = errors.New("cubestudio: no move in flight")
	ErrAnimating    = errors.New("cubestudio: move in flight")
	ErrCursorBounds = errors.New("cubestudio: move cursor out of range")

	// Solve errors
	ErrSolveFailed = errors.New("cubestudio: solve request failed")
	ErrNoSolver    = errors.New("cubestudio: no solver configured")
	ErrSolving     = errors.New("cubestudio: solve already in progress")

	ErrSolveSuperseded = errors.New("cubestudio: solve superseded by reset")
)

// Facelet addresses a single sticker.
type Facelet struct {
	Face  Face `json:"face"`
	Index int  `json:"index"`
}

func (f Facelet) String() string {
	return fmt.Sprintf("%s[%d]", f.Face, f.Index)
}

// EncodingError reports facelets whose color is not in the palette.
type EncodingError struct {
	Facelets []Facelet
	Colors   []Color
}

func (e *EncodingError) Error() string {
	parts := make([]string, len(e.Facelets))
	for i, f := range e.Facelets {
		parts[i] = fmt.Sprintf("%s=%s", f, e.Colors[i].Name())
	}
	return fmt.Sprintf("%v: %s", ErrEncoding, strings.Join(parts, ", "))
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// DecodingError reports state string positions that are not face letters,
// or a string of the wrong length.
type DecodingError struct {
	Length    int
	Positions []int
}

func (e *DecodingError) Error() string {
	if e.Length != StateLength {
		return fmt.Sprintf("%v: length %d (expected %d)", ErrDecoding, e.Length, StateLength)
	}
	return fmt.Sprintf("%v: bad characters at %v", ErrDecoding, e.Positions)
}

func (e *DecodingError) Unwrap() error { return ErrDecoding }

// ParseError reports a move token that does not start with a face letter.
type ParseError struct {
	Token string // offending token
	Index int    // position of the token in the sequence
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: token %d %q", ErrInvalidNotation, e.Index, e.Token)
}

func (e *ParseError) Unwrap() error { return ErrInvalidNotation }

// ColorCount is one tally from validation.
type ColorCount struct {
	Color Color `json:"color"`
	Count int   `json:"count"`
}

// ValidationError reports every color whose count is not 9. Color and Count
// hold the first violation.
type ValidationError struct {
	Color      Color
	Count      int
	Violations []ColorCount
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s appears %d times (expected 9)", v.Color.Name(), v.Count)
	}
	return fmt.Sprintf("%v: %s", ErrInvalidColorCount, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidColorCount }

// SolveRequestError reports a failed call to the solve boundary.
type SolveRequestError struct {
	Status  int    // HTTP status, 0 when no response was received
	Message string // human-readable reason
	Err     error  // underlying cause, may be nil
}

func (e *SolveRequestError) Error() string {
	msg := fmt.Sprintf("solver failed: %s", e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("solver failed (%d): %s", e.Status, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrSolveFailed.
func (e *SolveRequestError) Is(target error) bool { return target == ErrSolveFailed }

func (e *SolveRequestError) Unwrap() error { return e.Err }
