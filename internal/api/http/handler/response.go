package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/libremedic_admin/internal/api/http/middleware"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
)

// body is the shape of every admin response. Notices are the toasts the
// screen raised while serving the request.
type body struct {
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Notices []screen.Notice   `json:"notices,omitempty"`
}

func ok(c fiber.Ctx, data any, notes *screen.Collector) error {
	return c.JSON(body{Data: data, Notices: drain(notes)})
}

func created(c fiber.Ctx, data any, notes *screen.Collector) error {
	return c.Status(fiber.StatusCreated).JSON(body{Data: data, Notices: drain(notes)})
}

func fail(c fiber.Ctx, status int, msg string, notes *screen.Collector) error {
	return c.Status(status).JSON(body{Error: msg, Notices: drain(notes)})
}

func badRequest(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg, nil)
}

func unprocessable(c fiber.Ctx, msg string, fields map[string]string, notes *screen.Collector) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(body{Error: msg, Fields: fields, Notices: drain(notes)})
}

func notFound(c fiber.Ctx, msg string, data any, notes *screen.Collector) error {
	return c.Status(fiber.StatusNotFound).JSON(body{Error: msg, Data: data, Notices: drain(notes)})
}

func conflict(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusConflict, msg, nil)
}

func badGateway(c fiber.Ctx, msg string, data any, notes *screen.Collector) error {
	return c.Status(fiber.StatusBadGateway).JSON(body{Error: msg, Data: data, Notices: drain(notes)})
}

func internalError(c fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "internal server error", nil)
}

func drain(notes *screen.Collector) []screen.Notice {
	if notes == nil {
		return nil
	}
	return notes.Drain()
}

// ErrorHandler renders errors returned by middleware, such as
// fiber.ErrForbidden, in the same JSON shape.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	} else {
		rid, _ := middleware.RequestIDFromFiber(c)
		slog.ErrorContext(c.Context(), "unhandled error", "request_id", rid, "error", err)
	}
	return c.Status(code).JSON(body{Error: msg})
}
