package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/notation"
)

var (
	encodeFrom    string
	encodePaint   []string
	decodeJSON    bool
	parseInvert   bool
	parseJSON     bool
	parseDescribe bool
	parseSimplify bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a net as a 54-character state string",
	Long: `Encode a net as a state string (faces U, R, F, D, L, B; 9 letters each).

The net starts solved, or is read as JSON from --from ("-" for stdin).
--paint applies single facelets on top, as FACE+INDEX=COLOR.

Examples:
  cubestudio encode
  cubestudio encode --paint F0=blue --paint R4=red
  cubestudio encode --from net.json`,
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <state>",
	Short: "Show the net of a state string",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var validateCmd = &cobra.Command{
	Use:   "validate <state>",
	Short: "Check that every color appears 9 times",
	Long: `Check that every color appears exactly 9 times.

This is a color-count check only. It does not prove the state can be
reached by turning a real cube.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var parseCmd = &cobra.Command{
	Use:   "parse <moves>...",
	Short: "Parse move notation",
	Long: `Parse a move sequence and show each move's rotation.

Examples:
  cubestudio parse "R U R' U'"
  cubestudio parse R U2 F' --invert
  cubestudio parse "R R U U'" --simplify`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(encodeCmd, decodeCmd, validateCmd, parseCmd)

	encodeCmd.Flags().StringVar(&encodeFrom, "from", "", "Read the net as JSON from a file (- for stdin)")
	encodeCmd.Flags().StringArrayVarP(&encodePaint, "paint", "p", nil, "Paint a facelet, e.g. F0=blue")
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "Print the net as JSON")
	parseCmd.Flags().BoolVar(&parseInvert, "invert", false, "Print the inverse sequence")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print moves as JSON")
	parseCmd.Flags().BoolVar(&parseDescribe, "describe", false, "Describe each move in plain language")
	parseCmd.Flags().BoolVar(&parseSimplify, "simplify", false, "Merge and cancel adjacent same-face moves")
}

func runEncode(cmd *cobra.Command, args []string) error {
	n := cubestudio.NewNet()
	if encodeFrom != "" {
		var err error
		n, err = readNet(cmd.InOrStdin(), encodeFrom)
		if err != nil {
			return err
		}
	}

	for _, p := range encodePaint {
		f, idx, c, err := parsePaint(p)
		if err != nil {
			return err
		}
		if err := n.Set(f, idx, c); err != nil {
			return err
		}
	}

	state, err := cubestudio.Encode(n)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(state))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), state)
	return nil
}

func readNet(stdin io.Reader, path string) (cubestudio.Net, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return cubestudio.Net{}, fmt.Errorf("failed to read net: %w", err)
	}

	var n cubestudio.Net
	if err := json.Unmarshal(data, &n); err != nil {
		return cubestudio.Net{}, fmt.Errorf("failed to parse net: %w", err)
	}
	return n, nil
}

// parsePaint parses FACE+INDEX=COLOR, e.g. "F0=blue".
func parsePaint(s string) (cubestudio.Face, int, cubestudio.Color, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok || len(lhs) < 2 {
		return 0, 0, 0, fmt.Errorf("invalid paint %q: want FACE+INDEX=COLOR", s)
	}
	f, err := cubestudio.ParseFace(lhs[:1])
	if err != nil {
		return 0, 0, 0, err
	}
	idx, err := strconv.Atoi(lhs[1:])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid paint %q: %w", s, err)
	}
	c, err := cubestudio.ParseColor(rhs)
	if err != nil {
		return 0, 0, 0, err
	}
	return f, idx, c, nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	n, err := cubestudio.Decode(args[0])
	out := cmd.OutOrStdout()

	if decodeJSON {
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(n)
	}

	fmt.Fprintln(out, renderNet(n, 0, -1))
	if err != nil {
		var decErr *cubestudio.DecodingError
		if errors.As(err, &decErr) && len(decErr.Positions) > 0 {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("unknown facelets at %v", decErr.Positions)))
		}
		return err
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	n, err := cubestudio.Decode(args[0])
	if err != nil {
		return err
	}

	if err := cubestudio.Validate(n); err != nil {
		var vErr *cubestudio.ValidationError
		if errors.As(err, &vErr) {
			for _, v := range vErr.Violations {
				fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render(
					fmt.Sprintf("%s appears %d times (expected 9)", v.Color.Name(), v.Count)))
			}
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("valid: every color appears 9 times"))
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	moves, err := cubestudio.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if parseSimplify {
		r := notation.Analyze(moves)
		fmt.Fprintln(out, r.Simplified)
		fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d -> %d moves (%d cancelled, %d merged)",
			r.Original, r.Length, len(r.Cancellations), len(r.Merges))))
		return nil
	}

	if parseInvert {
		fmt.Fprintln(out, cubestudio.FormatMoves(cubestudio.InvertMoves(moves)))
		return nil
	}

	if parseJSON {
		type row struct {
			cubestudio.Move
			Notation    string              `json:"notation"`
			Description string              `json:"description"`
			Rotation    cubestudio.Rotation `json:"rotation"`
		}
		rows := make([]row, len(moves))
		for i, m := range moves {
			rows[i] = row{
				Move:        m,
				Notation:    m.Notation(),
				Description: notation.Describe(m),
				Rotation:    cubestudio.AxisAngle(m),
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(out, "%-4s %-6s %-5s %-4s %-6s", "#", "token", "turns", "axis", "angle")
	if parseDescribe {
		fmt.Fprint(out, "  move")
	}
	fmt.Fprintln(out)
	for i, m := range moves {
		r := cubestudio.AxisAngle(m)
		fmt.Fprintf(out, "%-4d %-6s %-5d %-4s %+5.0f°", i+1, m.Token, m.Turns, r.Axis, r.Angle*180/math.Pi)
		if parseDescribe {
			fmt.Fprintf(out, "  %s", notation.Describe(m))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d moves\n", len(moves))
	return nil
}
