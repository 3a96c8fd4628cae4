package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestudio/internal/server"
	"github.com/SeamusWaldron/cubestudio/internal/storage"
)

var (
	serveAddr      string
	serveAccessLog bool
	serveMaxSess   int
	serveTTL       time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API used by browser front-ends.

Each session owns a cube net and a move sequence. The front-end paints
facelets, asks for a solve and steps through the moves, reporting back
after each one is rendered. POST /solve is a stub solver that answers any
valid state with a fixed sequence.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveAccessLog, "access-log", false, "Log every request")
	serveCmd.Flags().IntVar(&serveMaxSess, "max-sessions", 1000, "Maximum live sessions")
	serveCmd.Flags().DurationVar(&serveTTL, "session-ttl", time.Hour, "Drop sessions idle for this long")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	solve, name := newSolver()
	scfg := server.Config{
		Solver:         solve,
		SkipValidation: !cfg.ValidateBeforeSolve,
		Logger:         logger,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MaxSessions:    serveMaxSess,
		SessionTTL:     serveTTL,
	}
	if serveAccessLog {
		scfg.AccessLog = os.Stderr
	}

	db, err := openHistory()
	if err != nil {
		logger.Warn("solve history disabled", "err", err)
	} else if db != nil {
		defer db.Close()
		scfg.Recorder = storage.NewHistory(db, name)
		logger.Debug("recording solves", "db", db.Path())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(scfg)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(ctx, addr)
	}()

	logger.Info("solver", "using", name)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
