// Package server exposes cube sessions and the stub solve endpoint over
// HTTP for a browser front-end.
package server

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SeamusWaldron/cubestudio"
)

// Config configures a Server.
type Config struct {
	// Solver answers session solve requests. Nil uses the demo solver.
	Solver cubestudio.Solver
	// SkipValidation sends session nets to the solver without the
	// color-count check. The zero value validates.
	SkipValidation bool
	Recorder       cubestudio.SolveRecorder
	Logger         *log.Logger

	CORSOrigins []string
	MaxSessions int
	SessionTTL  time.Duration

	// AccessLog receives one line per request. Nil disables it.
	AccessLog io.Writer
}

// Server holds the fiber app and the live sessions.
type Server struct {
	app      *fiber.App
	sessions *sessions
	logger   *log.Logger
	ttl      time.Duration
	started  time.Time
}

// New builds the app and registers all routes.
func New(cfg Config) *Server {
	if cfg.Solver == nil {
		cfg.Solver = cubestudio.DemoSolver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.MaxSessions == 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}

	opts := []cubestudio.Option{
		cubestudio.WithSolver(cfg.Solver),
		cubestudio.WithValidateBeforeSolve(!cfg.SkipValidation),
		cubestudio.WithLogger(cfg.Logger),
	}
	if cfg.Recorder != nil {
		opts = append(opts, cubestudio.WithSolveRecorder(cfg.Recorder))
	}

	s := &Server{
		sessions: newSessions(cfg.MaxSessions, opts),
		logger:   cfg.Logger,
		ttl:      cfg.SessionTTL,
		started:  time.Now(),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
			Output: cfg.AccessLog,
		}))
	}
	origins := "*"
	if len(cfg.CORSOrigins) > 0 {
		origins = strings.Join(cfg.CORSOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(contentTypeValidator)

	app.Get("/health", s.health)

	// Stub solve boundary.
	app.Post("/solve", s.solve)

	api := app.Group("/api/v1")
	api.Post("/moves/parse", s.parseMoves)

	api.Post("/sessions", s.createSession)
	api.Get("/sessions/:id", s.withSession(s.getSession))
	api.Delete("/sessions/:id", s.deleteSession)
	api.Put("/sessions/:id/stickers", s.withSession(s.paint))
	api.Put("/sessions/:id/net", s.withSession(s.setNet))
	api.Put("/sessions/:id/moves", s.withSession(s.loadMoves))
	api.Get("/sessions/:id/notation", s.withSession(s.notation))
	api.Get("/sessions/:id/validation", s.withSession(s.validation))
	api.Post("/sessions/:id/solve", s.withSession(s.solveSession))
	api.Post("/sessions/:id/play", s.withSession(s.play))
	api.Post("/sessions/:id/pause", s.withSession(s.pause))
	api.Post("/sessions/:id/advance", s.withSession(s.advance))
	api.Post("/sessions/:id/steps", s.withSession(s.requestStep))
	api.Post("/sessions/:id/steps/take", s.withSession(s.takeStep))
	api.Post("/sessions/:id/complete", s.withSession(s.complete))
	api.Post("/sessions/:id/reset", s.withSession(s.reset))

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown. Idle sessions are swept in the
// background.
func (s *Server) Listen(ctx context.Context, addr string) error {
	go s.sweepLoop(ctx)
	s.logger.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sweepLoop(ctx context.Context) {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(s.ttl); n > 0 {
				s.logger.Debug("swept idle sessions", "count", n)
			}
		}
	}
}
