package notation

import (
	"github.com/SeamusWaldron/cubestudio"
)

// Cancellation is a pair of adjacent moves that undo each other (R R').
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
}

// Merge is a pair of adjacent same-face moves that could be one move
// (R R -> R2).
type Merge struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
	Merged string `json:"merged"`
}

// Report lists the wasted turns in a sequence.
type Report struct {
	Cancellations []Cancellation `json:"cancellations"`
	Merges        []Merge        `json:"merges"`
	Simplified    string         `json:"simplified"`
	Original      int            `json:"original"`
	Length        int            `json:"length"`
}

// Wasted is the number of moves Simplify removes.
func (r Report) Wasted() int {
	return r.Original - r.Length
}

// Analyze looks at adjacent pairs only; Simplify also catches chains such
// as R U U' R'.
func Analyze(moves []cubestudio.Move) Report {
	report := Report{
		Cancellations: []Cancellation{},
		Merges:        []Merge{},
		Original:      len(moves),
	}

	for i := 0; i+1 < len(moves); i++ {
		m1, m2 := moves[i], moves[i+1]
		if m1.Face != m2.Face {
			continue
		}
		merged, ok := merge(m1, m2)
		if !ok {
			report.Cancellations = append(report.Cancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
			})
			continue
		}
		report.Merges = append(report.Merges, Merge{
			Index1: i,
			Index2: i + 1,
			Move1:  m1.Notation(),
			Move2:  m2.Notation(),
			Merged: merged.Notation(),
		})
	}

	simplified := Simplify(moves)
	report.Simplified = cubestudio.FormatMoves(simplified)
	report.Length = len(simplified)
	return report
}

// Simplify merges adjacent same-face moves and drops those that cancel,
// repeating until no two neighbours share a face.
func Simplify(moves []cubestudio.Move) []cubestudio.Move {
	result := make([]cubestudio.Move, 0, len(moves))

	for _, m := range moves {
		m = cubestudio.Move{Face: m.Face, Turns: m.Turns}
		if len(result) == 0 || result[len(result)-1].Face != m.Face {
			result = append(result, m)
			continue
		}

		last := &result[len(result)-1]
		merged, ok := merge(*last, m)
		if !ok {
			result = result[:len(result)-1]
			continue
		}
		*last = merged
	}

	return result
}

// merge combines two moves of the same face. ok is false when they cancel.
func merge(a, b cubestudio.Move) (cubestudio.Move, bool) {
	turns := (a.Turns + b.Turns) % 4
	if turns == 0 {
		return cubestudio.Move{}, false
	}
	return cubestudio.Move{Face: a.Face, Turns: turns}, true
}
