package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio/internal/storage"
)

var (
	historyLimit int
	historyState string
	pruneOlder   time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded solve requests",
	Long:  `Commands for listing, summarizing and pruning recorded solve requests.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solve requests",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <request-id>",
	Short: "Show one solve request",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize solve requests",
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old solve requests",
	Long: `Delete solve requests older than --older-than.

Examples:
  cubestudio history prune --older-than 720h`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyStatsCmd, historyPruneCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of requests to show")
	historyListCmd.Flags().StringVar(&historyState, "state", "", "Only show requests for this state string")
	historyPruneCmd.Flags().DurationVar(&pruneOlder, "older-than", 30*24*time.Hour, "Age cutoff")
}

// openHistoryRepo opens the database for history commands, which need it
// even when recording is disabled.
func openHistoryRepo() (*storage.DB, *storage.History, error) {
	path, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return db, storage.NewHistory(db, ""), nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, h, err := openHistoryRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	var reqs []storage.SolveRequest
	if historyState != "" {
		reqs, err = h.ForState(cmd.Context(), historyState)
	} else {
		reqs, err = h.List(cmd.Context(), historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to list solve requests: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(reqs) == 0 {
		fmt.Fprintln(out, "No solve requests recorded yet")
		fmt.Fprintln(out, "Send one with: cubestudio solve")
		return nil
	}

	fmt.Fprintf(out, "Recent solve requests (showing %d):\n\n", len(reqs))
	fmt.Fprintf(out, "%-36s  %-19s  %-8s  %-5s  %s\n", "ID", "Started", "Took", "Moves", "Result")
	fmt.Fprintln(out, "------------------------------------  -------------------  --------  -----  ------")

	for _, r := range reqs {
		moves := "-"
		result := okStyle.Render("ok")
		if r.Succeeded() {
			moves = fmt.Sprintf("%d", r.MoveCount)
		} else {
			result = errorStyle.Render(truncate(*r.Error, 40))
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-8s  %-5s  %s\n",
			r.RequestID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatDuration(time.Duration(r.DurationMs)*time.Millisecond),
			moves,
			result,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, h, err := openHistoryRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := h.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("solve request not found: %s", args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Solve request "+r.RequestID))
	fmt.Fprintf(out, "Started:  %s\n", r.StartedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Took:     %s\n", formatDuration(time.Duration(r.DurationMs)*time.Millisecond))
	if r.Solver != nil {
		fmt.Fprintf(out, "Solver:   %s\n", *r.Solver)
	}
	fmt.Fprintf(out, "State:    %s\n", r.State)
	if r.Moves != nil {
		fmt.Fprintf(out, "Moves:    %s (%d)\n", *r.Moves, r.MoveCount)
	}
	if r.Error != nil {
		fmt.Fprintf(out, "Error:    %s\n", errorStyle.Render(*r.Error))
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	db, h, err := openHistoryRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := h.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Requests:      %d\n", s.Total)
	fmt.Fprintf(out, "Failed:        %d\n", s.Failed)
	fmt.Fprintf(out, "Avg duration:  %s\n", formatDuration(time.Duration(s.AvgDurationMs*float64(time.Millisecond))))
	fmt.Fprintf(out, "Avg moves:     %.1f\n", s.AvgMoveCount)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	if pruneOlder <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}
	db, h, err := openHistoryRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := h.Prune(cmd.Context(), time.Now().Add(-pruneOlder))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d solve requests\n", n)
	return nil
}

// formatDuration formats a duration as "1.234s" or "2m03.4s".
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := d.Seconds() - float64(m*60)
	return fmt.Sprintf("%dm%04.1fs", m, s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
