package httpd

import (
	"github.com/gofiber/fiber/v2"
)

type Options struct {
	Name  string
	Views fiber.Views
	Debug bool
}

// NewApp returns a fiber app whose errors go through ErrorHandler.
func NewApp(opts Options) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               opts.Name,
		Views:                 opts.Views,
		ErrorHandler:          ErrorHandler(opts.Debug),
		DisableStartupMessage: true,
		CaseSensitive:         true,
		StrictRouting:         true,
	})
}
