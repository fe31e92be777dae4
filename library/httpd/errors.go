package httpd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"sited/ctx"
	"sited/schema"
)

// ErrorHandler writes err as a plain text response. In debug mode the body
// carries the error itself, otherwise only the status text.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := http.StatusInternalServerError
		var text string

		var fiberErr *fiber.Error
		if appErr, ok := schema.NewErrorFromErr(err); ok {
			status = appErr.Status()
			text = appErr.String()
		} else if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			text = fiberErr.Message
		} else {
			text = fmt.Sprintf("Internal server error, err=%v", err)
		}

		log := ctx.New(c.UserContext()).Log()
		if status >= http.StatusInternalServerError {
			log.Error(text)
		} else {
			log.Debug(text)
		}

		body := http.StatusText(status)
		if debug {
			body = text
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(status).SendString(body)
	}
}

// NotFound terminates the handler chain for anything no route or static
// mount could serve.
func NotFound(c *fiber.Ctx) error {
	return schema.NewNotFoundError("Nothing to serve at %s %s", c.Method(), c.Path())
}
