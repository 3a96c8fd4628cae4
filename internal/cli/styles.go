package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubestudio"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("226"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// sticker renders one facelet as a colored block. A cursor is drawn as
// brackets around the letter.
func sticker(c cubestudio.Color, cursor bool) string {
	fg := "#000000"
	if c == cubestudio.Blue || c == cubestudio.Green || c == cubestudio.Unknown || c == cubestudio.Red {
		fg = "#FFFFFF"
	}
	text := " " + c.String() + " "
	if cursor {
		text = "[" + c.String() + "]"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg)).
		Render(text)
}

// netLayout is the cross layout used for display: face per 3x3 block.
var netLayout = [3][4]cubestudio.Face{
	{0, cubestudio.FaceU, 0, 0},
	{cubestudio.FaceL, cubestudio.FaceF, cubestudio.FaceR, cubestudio.FaceB},
	{0, cubestudio.FaceD, 0, 0},
}

// renderNet draws the net with colored stickers. cursorFace/cursorIndex
// mark one facelet; pass 0, -1 for none.
func renderNet(n cubestudio.Net, cursorFace cubestudio.Face, cursorIndex int) string {
	var b strings.Builder
	blank := strings.Repeat(" ", 9)

	for _, band := range netLayout {
		for r := 0; r < 3; r++ {
			for _, f := range band {
				if f == 0 {
					b.WriteString(blank)
					continue
				}
				face := n.Face(f)
				for col := 0; col < 3; col++ {
					i := r*3 + col
					b.WriteString(sticker(face[i], f == cursorFace && i == cursorIndex))
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMoves shows the sequence with the move at the cursor highlighted.
func renderMoves(moves []cubestudio.Move, index int) string {
	if len(moves) == 0 {
		return statusStyle.Render("(no moves)")
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		switch {
		case i == index:
			parts[i] = currentMoveStyle.Render(m.Notation())
		case i < index:
			parts[i] = statusStyle.Render(m.Notation())
		default:
			parts[i] = moveStyle.Render(m.Notation())
		}
	}
	return strings.Join(parts, " ")
}
