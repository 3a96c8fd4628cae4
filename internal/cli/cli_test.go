package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/cubie"
)

const solvedState = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParsePaint(t *testing.T) {
	f, idx, c, err := parsePaint("F0=blue")
	if err != nil {
		t.Fatalf("parsePaint: %v", err)
	}
	if f != cubestudio.FaceF || idx != 0 || c != cubestudio.Blue {
		t.Errorf("got %s %d %s", f, idx, c.Name())
	}

	for _, bad := range []string{"F0", "=blue", "X0=blue", "Fa=blue", "F0=purple"} {
		if _, _, _, err := parsePaint(bad); err == nil {
			t.Errorf("parsePaint(%q) should fail", bad)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(1234 * time.Millisecond); got != "1.234s" {
		t.Errorf("formatDuration = %q", got)
	}
	if got := formatDuration(2*time.Minute + 3400*time.Millisecond); got != "2m03.4s" {
		t.Errorf("formatDuration = %q", got)
	}
}

func TestRenderNetShowsCursor(t *testing.T) {
	out := renderNet(cubestudio.NewNet(), cubestudio.FaceF, 4)
	if lines := strings.Split(out, "\n"); len(lines) != 9 {
		t.Errorf("rendered %d lines, want 9", len(lines))
	}
	if strings.Count(out, "[") != 1 {
		t.Errorf("want exactly one cursor in:\n%s", out)
	}
	if strings.Contains(renderNet(cubestudio.NewNet(), 0, -1), "[") {
		t.Error("cursor drawn with index -1")
	}
}

func TestEncodeCommand(t *testing.T) {
	out, err := execute(t, "encode", "--paint", "F0=blue")
	if err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}
	state := strings.TrimSpace(out)
	if len(state) != cubestudio.StateLength {
		t.Fatalf("state = %q", state)
	}
	// Blue is the R face's color.
	if state[18] != 'R' {
		t.Errorf("F[0] encoded as %c, want R", state[18])
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", solvedState)
	if err != nil {
		t.Fatalf("validate solved: %v", err)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("output = %q", out)
	}

	bad := "U" + solvedState[:53]
	_, err = execute(t, "validate", bad)
	if !errors.Is(err, cubestudio.ErrInvalidColorCount) {
		t.Errorf("err = %v, want ErrInvalidColorCount", err)
	}
}

func TestDecodeCommandRejectsGarbage(t *testing.T) {
	_, err := execute(t, "decode", "UUU")
	if !errors.Is(err, cubestudio.ErrDecoding) {
		t.Errorf("err = %v, want ErrDecoding", err)
	}
}

func TestParseCommandSimplify(t *testing.T) {
	out, err := execute(t, "parse", "--simplify", "R R U U'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if first := strings.SplitN(out, "\n", 2)[0]; first != "R2" {
		t.Errorf("simplified = %q, want R2", first)
	}
}

func TestSolveCommandWithDemoSolver(t *testing.T) {
	out, err := execute(t, "solve", "--no-history", "--apply", solvedState)
	if err != nil {
		t.Fatalf("solve: %v\n%s", err, out)
	}
	if !strings.Contains(out, cubestudio.DemoSolution) {
		t.Errorf("output missing demo solution:\n%s", out)
	}
	if !strings.Contains(out, "8 moves") {
		t.Errorf("output missing move count:\n%s", out)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditModelPaint(t *testing.T) {
	store := cubestudio.NewStore()
	cube := cubie.New()
	m := newEditModel(testContext(t), store, cube)

	// Cursor starts on U[4]; tab moves to R, up/right to R[2].
	for _, k := range []string{"tab", "up", "right", "3"} {
		m.Update(key(k))
	}
	if m.err != "" {
		t.Fatalf("err = %q", m.err)
	}

	if c, _ := store.Net().At(cubestudio.FaceR, 2); c != cubestudio.Red {
		t.Errorf("R[2] = %s, want red", c.Name())
	}
	if c, _ := store.Net().At(cubestudio.FaceR, 5); c != cubestudio.Blue {
		t.Errorf("R[5] changed to %s", c.Name())
	}
	if c, _ := cube.Net().At(cubestudio.FaceR, 2); c != cubestudio.Red {
		t.Errorf("cube view R[2] = %s, want red", c.Name())
	}

	m.Update(key("r"))
	if !store.Net().IsSolved() || !cube.IsSolved() {
		t.Error("reset did not restore the solved cube")
	}
}

func TestEditModelPaintDropsSequence(t *testing.T) {
	store := cubestudio.NewStore()
	if err := store.LoadSolution("R U"); err != nil {
		t.Fatal(err)
	}
	m := newEditModel(testContext(t), store, cubie.New())

	m.Update(key("1"))
	if n := len(store.Snapshot().Moves); n != 0 {
		t.Errorf("moves = %d after painting, want 0", n)
	}
}

func TestEditModelSolve(t *testing.T) {
	store := cubestudio.NewStore(cubestudio.WithSolver(cubestudio.DemoSolver{}))
	m := newEditModel(testContext(t), store, cubie.New())

	_, cmd := m.Update(key("s"))
	if cmd == nil {
		t.Fatal("solve returned no command")
	}
	m.Update(cmd())

	if m.err != "" {
		t.Fatalf("err = %q", m.err)
	}
	if got := cubestudio.FormatMoves(store.Snapshot().Moves); got != cubestudio.DemoSolution {
		t.Errorf("moves = %q", got)
	}
	if !strings.Contains(m.View(), "Next: U") {
		t.Errorf("view does not show the next move:\n%s", m.View())
	}
}

// testContext stands in for t.Context (Go 1.24+): the context is canceled
// when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
