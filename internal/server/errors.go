package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SeamusWaldron/cubestudio"
)

// Error codes
const (
	ErrInvalidNotation  = "INVALID_NOTATION"
	ErrInvalidState     = "INVALID_STATE"
	ErrInvalidRequest   = "INVALID_REQUEST"
	ErrInvalidContent   = "INVALID_CONTENT_TYPE"
	ErrSessionNotFound  = "SESSION_NOT_FOUND"
	ErrAnimating        = "ANIMATING"
	ErrNotAnimating     = "NOT_ANIMATING"
	ErrSolveSuperseded  = "SOLVE_SUPERSEDED"
	ErrInvalidColorCnt  = "INVALID_COLOR_COUNT"
	ErrSolverFailed     = "SOLVER_FAILED"
	ErrResourceLimit    = "RESOURCE_LIMIT"
	ErrInternalError    = "INTERNAL_ERROR"
	ErrNotFound         = "NOT_FOUND"
	ErrMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// mapError turns a library error into a status and response body.
func mapError(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Details: err.Error()}

	switch {
	case errors.Is(err, cubestudio.ErrInvalidNotation):
		resp.Error, resp.Code = "invalid move notation", ErrInvalidNotation
		return fiber.StatusBadRequest, resp
	case errors.Is(err, cubestudio.ErrDecoding), errors.Is(err, cubestudio.ErrEncoding):
		resp.Error, resp.Code = "invalid cube state notation", ErrInvalidState
		return fiber.StatusBadRequest, resp
	case errors.Is(err, cubestudio.ErrInvalidColorCount):
		resp.Error, resp.Code = "invalid color count", ErrInvalidColorCnt
		return fiber.StatusUnprocessableEntity, resp
	case errors.Is(err, cubestudio.ErrInvalidFacelet),
		errors.Is(err, cubestudio.ErrUnknownFace),
		errors.Is(err, cubestudio.ErrUnknownColor),
		errors.Is(err, cubestudio.ErrCursorBounds):
		resp.Error, resp.Code = "invalid request", ErrInvalidRequest
		return fiber.StatusBadRequest, resp
	case errors.Is(err, cubestudio.ErrAnimating), errors.Is(err, cubestudio.ErrSolving):
		resp.Error, resp.Code = "a move or solve is in progress", ErrAnimating
		return fiber.StatusConflict, resp
	case errors.Is(err, cubestudio.ErrSolveSuperseded):
		resp.Error, resp.Code = "session was reset during the solve", ErrSolveSuperseded
		return fiber.StatusConflict, resp
	case errors.Is(err, cubestudio.ErrNotAnimating):
		resp.Error, resp.Code = "no move in flight", ErrNotAnimating
		return fiber.StatusConflict, resp
	case errors.Is(err, cubestudio.ErrSolveFailed), errors.Is(err, cubestudio.ErrNoSolver):
		resp.Error, resp.Code = "solver failed", ErrSolverFailed
		return fiber.StatusBadGateway, resp
	}

	resp.Error, resp.Code = "internal server error", ErrInternalError
	return fiber.StatusInternalServerError, resp
}

func sendError(c *fiber.Ctx, err error) error {
	status, resp := mapError(err)
	return c.Status(status).JSON(resp)
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := ErrorResponse{
		Error: "internal server error",
		Code:  ErrInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = ErrNotFound
		case fiber.StatusMethodNotAllowed:
			response.Code = ErrMethodNotAllowed
		case fiber.StatusBadRequest:
			response.Code = ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = ErrResourceLimit
		}
	}

	return c.Status(code).JSON(response)
}
