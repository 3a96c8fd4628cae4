package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SeamusWaldron/cubestudio"
	"github.com/SeamusWaldron/cubestudio/internal/notation"
)

// SessionResponse is the snapshot returned by session endpoints.
type SessionResponse struct {
	ID    string           `json:"id"`
	State cubestudio.State `json:"state"`
}

// MoveInfo is one parsed move with its rotation.
type MoveInfo struct {
	Token       string              `json:"token"`
	Face        cubestudio.Face     `json:"face"`
	Turns       cubestudio.Turns    `json:"turns"`
	Notation    string              `json:"notation"`
	Inverse     string              `json:"inverse"`
	Description string              `json:"description"`
	Rotation    cubestudio.Rotation `json:"rotation"`
}

func moveInfo(m cubestudio.Move) MoveInfo {
	token := m.Token
	if token == "" {
		token = m.Notation()
	}
	return MoveInfo{
		Token:       token,
		Face:        m.Face,
		Turns:       m.Turns,
		Notation:    m.Notation(),
		Inverse:     m.Inverse().Notation(),
		Description: notation.Describe(m),
		Rotation:    cubestudio.AxisAngle(m),
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Unix(),
		"uptime":   time.Since(s.started).Round(time.Second).String(),
		"sessions": s.sessions.count(),
	})
}

// solve is the stub solver contract: POST /solve {"state"} -> {"moves"}.
func (s *Server) solve(c *fiber.Ctx) error {
	var req SolveRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	moves, err := cubestudio.DemoSolver{}.Solve(c.UserContext(), req.State)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid cube state notation",
			Code:    ErrInvalidState,
			Details: err.Error(),
		})
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (s *Server) parseMoves(c *fiber.Ctx) error {
	var req ParseRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	moves, err := cubestudio.ParseMoves(req.Moves)
	if err != nil {
		return sendError(c, err)
	}
	infos := make([]MoveInfo, len(moves))
	for i, m := range moves {
		infos[i] = moveInfo(m)
	}
	return c.JSON(fiber.Map{
		"moves":    infos,
		"count":    len(infos),
		"inverse":  cubestudio.FormatMoves(cubestudio.InvertMoves(moves)),
		"analysis": notation.Analyze(moves),
	})
}

func (s *Server) createSession(c *fiber.Ctx) error {
	sess, err := s.sessions.create()
	if err != nil {
		return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
			Error:   "session limit reached",
			Code:    ErrResourceLimit,
			Details: err.Error(),
		})
	}
	s.logger.Debug("session created", "id", sess.id)
	return c.Status(fiber.StatusCreated).JSON(SessionResponse{ID: sess.id, State: sess.store.Snapshot()})
}

// withSession resolves :id before calling fn.
func (s *Server) withSession(fn func(*fiber.Ctx, *session) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !isValidUUID(id) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid session ID format",
				Code:    ErrInvalidRequest,
				Details: "session ID must be a valid UUID",
			})
		}
		sess, err := s.sessions.get(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "session not found",
				Code:  ErrSessionNotFound,
			})
		}
		return fn(c, sess)
	}
}

func snapshot(c *fiber.Ctx, sess *session) error {
	return c.JSON(SessionResponse{ID: sess.id, State: sess.store.Snapshot()})
}

func (s *Server) getSession(c *fiber.Ctx, sess *session) error {
	return snapshot(c, sess)
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if !s.sessions.delete(id) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "session not found",
			Code:  ErrSessionNotFound,
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) paint(c *fiber.Ctx, sess *session) error {
	var req StickerRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	face, err := cubestudio.ParseFace(req.Face)
	if err != nil {
		return sendError(c, err)
	}
	color, err := cubestudio.ParseColor(req.Color)
	if err != nil {
		return sendError(c, err)
	}
	if err := sess.store.Paint(face, req.Index, color); err != nil {
		return sendError(c, err)
	}
	return snapshot(c, sess)
}

func (s *Server) setNet(c *fiber.Ctx, sess *session) error {
	var req NetRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	n, err := cubestudio.Decode(req.State)
	if err != nil {
		return sendError(c, err)
	}
	sess.store.SetNet(n)
	return snapshot(c, sess)
}

func (s *Server) loadMoves(c *fiber.Ctx, sess *session) error {
	var req LoadRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	if err := sess.store.LoadSolution(req.Moves); err != nil {
		return sendError(c, err)
	}
	return snapshot(c, sess)
}

func (s *Server) notation(c *fiber.Ctx, sess *session) error {
	state, err := cubestudio.Encode(sess.store.Net())
	resp := fiber.Map{"state": state, "complete": err == nil}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(resp)
}

func (s *Server) validation(c *fiber.Ctx, sess *session) error {
	return c.JSON(cubestudio.Check(sess.store.Net()))
}

func (s *Server) solveSession(c *fiber.Ctx, sess *session) error {
	if err := sess.store.Solve(c.UserContext()); err != nil {
		s.logger.Debug("session solve failed", "id", sess.id, "err", err)
		return sendError(c, err)
	}
	return snapshot(c, sess)
}

func (s *Server) play(c *fiber.Ctx, sess *session) error {
	changed := sess.store.Play()
	return c.JSON(fiber.Map{"changed": changed, "state": sess.store.Snapshot()})
}

func (s *Server) pause(c *fiber.Ctx, sess *session) error {
	changed := sess.store.Pause()
	return c.JSON(fiber.Map{"changed": changed, "state": sess.store.Snapshot()})
}

// advance hands the next move to a front-end that renders it and then calls
// complete.
func (s *Server) advance(c *fiber.Ctx, sess *session) error {
	m, ok := sess.store.Advance()
	resp := fiber.Map{"ok": ok, "state": sess.store.Snapshot()}
	if ok {
		resp["move"] = moveInfo(m)
	}
	return c.JSON(resp)
}

func (s *Server) requestStep(c *fiber.Ctx, sess *session) error {
	var req StepRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	id, err := sess.store.RequestStep(req.Direction)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id, "direction": req.Direction})
}

// takeStep hands out the next queued step. For direction -1 the returned
// move is already inverted, ready to render.
func (s *Server) takeStep(c *fiber.Ctx, sess *session) error {
	step, ok := sess.store.TakeStep()
	resp := fiber.Map{"ok": ok, "state": sess.store.Snapshot()}
	if ok {
		m := step.Move
		if step.Direction < 0 {
			m = m.Inverse()
		}
		resp["id"] = step.ID
		resp["direction"] = step.Direction
		resp["move"] = moveInfo(m)
	}
	return c.JSON(resp)
}

func (s *Server) complete(c *fiber.Ctx, sess *session) error {
	var req StepRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	if err := sess.store.CompleteStep(req.Direction); err != nil {
		if errors.Is(err, cubestudio.ErrNotAnimating) {
			s.logger.Debug("complete without a move in flight", "id", sess.id)
		}
		return sendError(c, err)
	}
	return snapshot(c, sess)
}

func (s *Server) reset(c *fiber.Ctx, sess *session) error {
	sess.store.Reset()
	return snapshot(c, sess)
}
