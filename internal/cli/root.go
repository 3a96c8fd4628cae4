// Package cli implements the command-line interface for cubestudio.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/config"
	"github.com/SeamusWaldron/cubestudio/internal/solver"
	"github.com/SeamusWaldron/cubestudio/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	solverURL  string
	noHistory  bool
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubestudio",
	Short: "Rubik's cube net editor and solution player",
	Long: `cubestudio - paint a 3x3 cube net, send it to a solver and step through
the returned move sequence.

Encode and decode 54-character state strings, check color counts, parse
move notation, run the HTTP API for a browser front-end, or edit a cube
in the terminal.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.cubestudio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "History database path (default: ~/.cubestudio/history.db)")
	rootCmd.PersistentFlags().StringVar(&solverURL, "solver", "", "Solve service URL (default: built-in demo solver)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record solve requests")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Storage.DBPath = dbPath
	}
	if solverURL != "" {
		c.Solver.URL = solverURL
	}
	if noHistory {
		c.Storage.Enabled = false
	}
	if verbose {
		c.LogLevel = "debug"
	}
	cfg = c

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubestudio",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return nil
}

// newSolver returns the configured solve boundary.
func newSolver() (cubestudio.Solver, string) {
	if cfg.Solver.URL == "" {
		return cubestudio.DemoSolver{}, "demo"
	}
	c := solver.New(cfg.Solver.URL)
	c.SetTimeout(cfg.Solver.Timeout)
	c.Logger = logger
	return c, cfg.Solver.URL
}

// openHistory opens the history database. It returns nil when history is
// disabled.
func openHistory() (*storage.DB, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	path, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return db, nil
}

// storeOptions builds the options shared by commands that own a Store. The
// returned close function releases the history database.
func storeOptions() ([]cubestudio.Option, func()) {
	s, name := newSolver()
	opts := []cubestudio.Option{
		cubestudio.WithSolver(s),
		cubestudio.WithValidateBeforeSolve(cfg.ValidateBeforeSolve),
		cubestudio.WithLogger(logger),
	}

	db, err := openHistory()
	if err != nil {
		logger.Warn("solve history disabled", "err", err)
		return opts, func() {}
	}
	if db == nil {
		return opts, func() {}
	}
	opts = append(opts, cubestudio.WithSolveRecorder(storage.NewHistory(db, name)))
	return opts, func() { db.Close() }
}
