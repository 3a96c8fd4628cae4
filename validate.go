package cubestudio

// Validation is the JSON-friendly result of Check.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks that every palette color occurs exactly 9 times across
// the 54 facelets, and that nothing else occurs at all.
//
// This is a gross count check only. It does not look at corner or edge
// parity, piece orientation, or whether the coloring could come from a
// physical cube.
func Validate(n Net) error {
	var counts [Orange + 1]int
	var foreign [256]int

	for slot := range n.Facelets {
		for _, c := range n.Facelets[slot] {
			if c.Valid() {
				counts[c]++
			} else {
				foreign[c]++
			}
		}
	}

	var violations []ColorCount
	for _, c := range Palette {
		if counts[c] != 9 {
			violations = append(violations, ColorCount{Color: c, Count: counts[c]})
		}
	}
	for c, count := range foreign {
		if count > 0 {
			violations = append(violations, ColorCount{Color: Color(c), Count: count})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{
		Color:      violations[0].Color,
		Count:      violations[0].Count,
		Violations: violations,
	}
}

// Check wraps Validate for display surfaces.
func Check(n Net) Validation {
	if err := Validate(n); err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}
