package httpd

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"sited/ctx"
)

// loggerMiddleware attaches a request logger to the user context and writes
// one access line per request. Errors are resolved here so the line carries
// the final status.
func (s *Server) loggerMiddleware(c *fiber.Ctx) error {
	rc := ctx.With(c.UserContext(), "request_id", c.Locals(requestIDKey))
	c.SetUserContext(rc)

	t0 := time.Now()
	if err := c.Next(); err != nil {
		if err := s.errorHandler(c, err); err != nil {
			rc.Log().Errorf("Failed to write an error response, err=%v", err)
			if err := c.SendStatus(fiber.StatusInternalServerError); err != nil {
				rc.Log().Errorf("Failed to send status, err=%v", err)
			}
		}
	}
	elapsed := time.Since(t0).Truncate(time.Microsecond)

	resp := c.Response()
	size := resp.Header.ContentLength()
	if size <= 0 {
		size = len(resp.Body())
	}

	rc.Log().Debugf("%v %v %d %v %v", c.Method(), c.OriginalURL(), resp.StatusCode(), elapsed, humanize.Bytes(uint64(size)))
	return nil
}
