package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/cubie"
)

var (
	solveFrom     string
	solvePaint    []string
	solveApply    bool
	solveNoVerify bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [state]",
	Short: "Send a cube state to the solver",
	Long: `Send a cube state to the solver and print the returned moves.

The state is a 54-character string, a JSON net (--from) or the solved net
with --paint applied. Without --solver the built-in demo solver is used,
which answers any state with a fixed sequence.

With --apply the moves are played on the cube model and the resulting net
is shown.

Examples:
  cubestudio solve UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB
  cubestudio solve --from net.json --solver http://localhost:5000
  cubestudio solve --paint F0=blue --paint B0=green --no-validate --apply`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveFrom, "from", "", "Read the net as JSON from a file (- for stdin)")
	solveCmd.Flags().StringArrayVarP(&solvePaint, "paint", "p", nil, "Paint a facelet, e.g. F0=blue")
	solveCmd.Flags().BoolVar(&solveApply, "apply", false, "Play the moves on the cube model and show the result")
	solveCmd.Flags().BoolVar(&solveNoVerify, "no-validate", false, "Skip the color count check")
}

// solveInput builds the net to solve from args and flags.
func solveInput(cmd *cobra.Command, args []string) (cubestudio.Net, error) {
	n := cubestudio.NewNet()
	switch {
	case len(args) == 1:
		decoded, err := cubestudio.Decode(args[0])
		if err != nil {
			return cubestudio.Net{}, err
		}
		n = decoded
	case solveFrom != "":
		read, err := readNet(cmd.InOrStdin(), solveFrom)
		if err != nil {
			return cubestudio.Net{}, err
		}
		n = read
	}

	for _, p := range solvePaint {
		f, idx, c, err := parsePaint(p)
		if err != nil {
			return cubestudio.Net{}, err
		}
		if err := n.Set(f, idx, c); err != nil {
			return cubestudio.Net{}, err
		}
	}
	return n, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	n, err := solveInput(cmd, args)
	if err != nil {
		return err
	}

	opts, closeHistory := storeOptions()
	defer closeHistory()
	if solveNoVerify {
		opts = append(opts, cubestudio.WithValidateBeforeSolve(false))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := cubestudio.NewStore(opts...)
	store.SetNet(n)

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintln(out, renderNet(n, 0, -1))
		fmt.Fprintln(out)
	}

	if err := store.Solve(ctx); err != nil {
		return err
	}

	state := store.Snapshot()
	fmt.Fprintln(out, cubestudio.FormatMoves(state.Moves))
	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d moves", len(state.Moves))))

	if !solveApply {
		return nil
	}

	model := cubie.New()
	model.Load(n)
	player := cubestudio.NewPlayer(store, model)
	player.SetLogger(logger)

	store.Play()
	if err := player.Drain(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderNet(model.Net(), 0, -1))
	if model.IsSolved() {
		fmt.Fprintln(out, okStyle.Render("solved"))
	} else {
		fmt.Fprintln(out, errorStyle.Render("not solved"))
	}
	return nil
}
