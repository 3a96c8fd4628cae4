package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// Request bodies.

// SolveRequest states are ASCII so len counts the same bytes the solver
// counts.
type SolveRequest struct {
	State string `json:"state" validate:"required,ascii,len=54"`
}

type StickerRequest struct {
	Face  string `json:"face" validate:"required,len=1"`
	Index int    `json:"index" validate:"min=0,max=8"`
	Color string `json:"color" validate:"required,max=16"`
}

type NetRequest struct {
	State string `json:"state" validate:"required,max=64"`
}

type StepRequest struct {
	Direction int `json:"direction" validate:"oneof=-1 1"`
}

type ParseRequest struct {
	Moves string `json:"moves" validate:"max=4096"`
}

type LoadRequest struct {
	Moves string `json:"moves" validate:"max=4096"`
}

// bindBody parses a JSON body into req and validates it. On failure it has
// already written the error response; the caller returns the result.
func bindBody(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid request body",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, err
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: describe(verrs),
		})
	}
	return true, nil
}

func describe(errs validator.ValidationErrors) string {
	var details strings.Builder
	for _, err := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", field))
		case "ascii":
			details.WriteString(fmt.Sprintf("%s must be ASCII", field))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", field, err.Param()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must be exactly %s characters", field, err.Param()))
		case "min":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", field, err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", field, err.Param()))
			}
		case "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", field, err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", field, err.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", field, err.Tag()))
		}
	}
	return details.String()
}

// contentTypeValidator ensures POST and PUT requests with a body are JSON.
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if (method == fiber.MethodPost || method == fiber.MethodPut) && len(c.Body()) > 0 {
		contentType := c.Get("Content-Type")
		if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
				Error:   "unsupported media type",
				Code:    ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
