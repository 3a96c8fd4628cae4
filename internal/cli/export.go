package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/export"
)

var (
	exportFormat  string
	exportOutput  string
	exportCell    int
	exportCaption string
	exportNoLabel bool
)

var exportCmd = &cobra.Command{
	Use:   "export <state>",
	Short: "Export a cube state",
	Long: `Export a cube state as a PNG image of the net, as JSON or as text.

Examples:
  cubestudio export UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB -o net.png
  cubestudio export <state> --format json
  cubestudio export <state> --format png --cell 60 --caption "after R U"`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Export format (png, json, txt); default from the output extension, else txt")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().IntVar(&exportCell, "cell", export.DefaultOptions.Cell, "PNG facelet size in pixels")
	exportCmd.Flags().StringVar(&exportCaption, "caption", "", "PNG caption")
	exportCmd.Flags().BoolVar(&exportNoLabel, "no-labels", false, "Do not draw face letters on PNG centers")
}

func runExport(cmd *cobra.Command, args []string) error {
	n, err := cubestudio.Decode(args[0])
	if err != nil {
		return err
	}

	format := strings.ToLower(exportFormat)
	if format == "" {
		format = "txt"
		if ext := strings.ToLower(filepath.Ext(exportOutput)); ext == ".png" || ext == ".json" {
			format = ext[1:]
		}
	}

	if exportOutput != "" {
		dir := filepath.Dir(exportOutput)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
	}

	switch format {
	case "png":
		return exportPNG(cmd, n)
	case "json":
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return writeOutput(cmd, string(data))
	case "txt":
		return writeOutput(cmd, n.String())
	default:
		return fmt.Errorf("unknown format: %s (use png, json or txt)", exportFormat)
	}
}

func exportPNG(cmd *cobra.Command, n cubestudio.Net) error {
	opts := export.DefaultOptions
	opts.Cell = exportCell
	opts.Labels = !exportNoLabel
	opts.Caption = exportCaption

	if exportOutput == "" {
		return export.WritePNG(cmd.OutOrStdout(), n, opts)
	}
	if err := export.SavePNG(exportOutput, n, opts); err != nil {
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported net to %s\n", exportOutput)
	return nil
}

func writeOutput(cmd *cobra.Command, output string) error {
	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(output, "\n"))
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(strings.TrimRight(output, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported net to %s\n", exportOutput)
	return nil
}
