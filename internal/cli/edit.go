package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/cubie"
	"github.com/SeamusWaldron/cubestudio/internal/export"
	"github.com/SeamusWaldron/cubestudio/internal/notation"
)

var (
	editState string
	editMoves string
	editTurn  time.Duration
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a cube and play its solution in the terminal",
	Long: `Open the interactive cube editor.

Paint facelets on the net, send the state to the solver and step through
the returned moves. The right-hand net shows the cube as the moves are
played.

Keys:
  arrows/hjkl  move the cursor     tab/shift+tab  next/previous face
  1-6          paint the color     s              solve
  space        play/pause          n/b            step forward/back
  c            copy state string   e              export PNG
  r            reset               q              quit`,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editState, "state", "", "Start from this state string")
	editCmd.Flags().StringVar(&editMoves, "moves", "", "Load this move sequence instead of solving")
	editCmd.Flags().DurationVar(&editTurn, "turn", 0, "Duration of a quarter turn (default from config)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	opts, closeHistory := storeOptions()
	defer closeHistory()

	store := cubestudio.NewStore(opts...)
	if editState != "" {
		n, err := cubestudio.Decode(editState)
		if err != nil {
			return err
		}
		store.SetNet(n)
	}
	if editMoves != "" {
		if err := store.LoadSolution(editMoves); err != nil {
			return err
		}
	}

	turn := cfg.Playback.TurnDuration
	if editTurn > 0 {
		turn = editTurn
	}

	// The program is created after the model, so callbacks reach it through
	// this variable. Both callbacks only fire once the program runs.
	var prog *tea.Program
	cube := cubie.New(
		cubie.WithTurnDuration(turn),
		cubie.WithFrameRate(30),
		cubie.WithFrameCallback(func(f cubie.Frame) {
			prog.Send(frameMsg(f))
		}),
	)
	cube.Load(store.Net())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := newEditModel(ctx, store, cube)
	prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Update runs on the program goroutine and mutates the store, so the
	// callback must not block on Send.
	store.SetChangeCallback(func(cubestudio.State) {
		go prog.Send(changedMsg{})
	})

	player := cubestudio.NewPlayer(store, cube)
	player.SetLogger(logger)
	go func() {
		err := player.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			prog.Send(playerErrMsg{err})
		}
	}()

	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

type (
	changedMsg   struct{}
	frameMsg     cubie.Frame
	solvedMsg    struct{ err error }
	playerErrMsg struct{ err error }
)

type editModel struct {
	ctx   context.Context
	store *cubestudio.Store
	cube  *cubie.Model

	face  int // index into cubestudio.Faces
	index int

	frame    cubie.Frame
	status   string
	err      string
	quitting bool
}

func newEditModel(ctx context.Context, store *cubestudio.Store, cube *cubie.Model) *editModel {
	return &editModel{
		ctx:   ctx,
		store: store,
		cube:  cube,
		index: 4,
	}
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case changedMsg:
		// Redraw only.

	case frameMsg:
		m.frame = cubie.Frame(msg)

	case solvedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.status = ""
		} else {
			st := m.store.Snapshot()
			m.cube.Load(st.Net)
			m.status = fmt.Sprintf("solution loaded: %d moves", len(st.Moves))
		}

	case playerErrMsg:
		m.err = "playback stopped: " + msg.err.Error()
	}
	return m, nil
}

func (m *editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = ""

	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.index >= 3 {
			m.index -= 3
		}
	case "down", "j":
		if m.index < 6 {
			m.index += 3
		}
	case "left", "h":
		if m.index%3 > 0 {
			m.index--
		}
	case "right", "l":
		if m.index%3 < 2 {
			m.index++
		}
	case "tab":
		m.face = (m.face + 1) % len(cubestudio.Faces)
	case "shift+tab":
		m.face = (m.face + len(cubestudio.Faces) - 1) % len(cubestudio.Faces)

	case "1", "2", "3", "4", "5", "6":
		m.paint(cubestudio.Palette[key[0]-'1'])

	case "s":
		m.status = "solving..."
		return m, m.solve()

	case " ":
		st := m.store.Snapshot()
		if st.Playing {
			m.store.Pause()
		} else if !m.store.Play() {
			m.status = "nothing to play"
		}

	case "n":
		m.step(1)
	case "b":
		m.step(-1)

	case "r":
		m.store.Reset()
		m.cube.Reset()
		m.status = "reset"

	case "c":
		state, err := cubestudio.Encode(m.store.Net())
		if err != nil {
			m.err = err.Error()
			break
		}
		if err := clipboard.WriteAll(state); err != nil {
			m.err = "clipboard: " + err.Error()
			break
		}
		m.status = "copied " + state

	case "e":
		name := fmt.Sprintf("cubestudio-%s.png", time.Now().Format("20060102-150405"))
		opts := export.DefaultOptions
		opts.Caption = cubestudio.FormatMoves(m.store.Snapshot().Moves)
		if err := export.SavePNG(name, m.cube.Net(), opts); err != nil {
			m.err = err.Error()
			break
		}
		m.status = "exported " + name
	}
	return m, nil
}

// paint edits the net. A loaded sequence no longer matches the new net, so
// it is dropped and the cube view shows the edit.
func (m *editModel) paint(c cubestudio.Color) {
	st := m.store.Snapshot()
	if st.Solving {
		m.err = "wait for the solver"
		return
	}
	if err := m.store.Paint(cubestudio.Faces[m.face], m.index, c); err != nil {
		m.err = err.Error()
		return
	}
	if len(st.Moves) > 0 {
		if err := m.store.SetMoves(nil); err != nil {
			m.err = err.Error()
		}
	}
	m.cube.Load(m.store.Net())
	m.status = ""
}

func (m *editModel) step(direction int) {
	if _, err := m.store.RequestStep(direction); err != nil {
		m.err = err.Error()
	}
}

func (m *editModel) solve() tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		return solvedMsg{err: store.Solve(ctx)}
	}
}

func (m *editModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.store.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubestudio"))
	b.WriteString("\n\n")

	left := renderNet(st.Net, cubestudio.Faces[m.face], m.index)
	right := renderNet(m.cube.Net(), 0, -1)
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%-36s   %s", "Net", "Cube")))
	b.WriteString("\n")
	for i := range leftLines {
		b.WriteString(leftLines[i])
		b.WriteString("   ")
		if i < len(rightLines) {
			b.WriteString(rightLines[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	f := cubestudio.Faces[m.face]
	b.WriteString(fmt.Sprintf("Cursor: %s[%d]  ", f.Name(), m.index))
	for i, c := range cubestudio.Palette {
		b.WriteString(fmt.Sprintf("%d=%s ", i+1, c.Name()))
	}
	b.WriteString("\n")

	if v := cubestudio.Check(st.Net); !v.Valid {
		b.WriteString(errorStyle.Render(v.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Moves %d/%d  ", st.Index, len(st.Moves)))
	b.WriteString(renderMoves(st.Moves, st.Index))
	b.WriteString("\n")
	if !st.AtEnd() {
		next := st.Moves[st.Index]
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: %s (%s)", next.Notation(), notation.Describe(next))))
		b.WriteString("\n")
	}

	var flags []string
	if st.Solving {
		flags = append(flags, "SOLVING")
	}
	if st.Playing {
		flags = append(flags, "PLAYING")
	}
	if st.Animating && !st.Solving {
		flags = append(flags, fmt.Sprintf("TURNING %s %3.0f%%", m.frame.Move.Notation(), m.frame.Progress*100))
	}
	if st.PendingSteps > 0 {
		flags = append(flags, fmt.Sprintf("%d queued", st.PendingSteps))
	}
	if len(flags) > 0 {
		b.WriteString(statusStyle.Render(strings.Join(flags, "  ")))
		b.WriteString("\n")
	}

	if m.cube.IsSolved() && len(st.Moves) > 0 && st.AtEnd() {
		b.WriteString(okStyle.Render("SOLVED!"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	} else if st.Error != "" {
		b.WriteString(errorStyle.Render(st.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows=move  tab=face  1-6=paint  s=solve  SPACE=play/pause  n/b=step  c=copy  e=export  r=reset  q=quit"))
	b.WriteString("\n")
	return b.String()
}
