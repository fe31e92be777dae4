package httpd

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"sited/library/httpd"
	"sited/schema"
)

func (s *Server) static(r fiber.Router) {
	site := s.config.Site

	cacheDuration := site.CacheDuration
	if s.config.Debug {
		cacheDuration = time.Second
	}

	httpd.MountStatic(r, site.StaticPrefix, site.Static, cacheDuration)
	r.Get("/", s.staticAppRoot)
}

func (s *Server) staticAppRoot(c *fiber.Ctx) error {
	if err := c.Render(s.config.Site.IndexName(), nil); err != nil {
		return schema.NewTemplateMissingError(s.config.Site.Index, err)
	}
	return nil
}
