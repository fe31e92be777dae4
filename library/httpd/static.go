package httpd

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MountStatic serves files under root at prefix. Only regular files are
// served: directories never resolve to an index page. Misses fall through to
// the next handler so the router decides the 404.
func MountStatic(r fiber.Router, prefix, root string, cacheDuration time.Duration) {
	r.Static(prefix, root, fiber.Static{
		Browse:        false,
		CacheDuration: cacheDuration,
		Next: func(c *fiber.Ctx) bool {
			return !isFileRequest(c.Path(), prefix, root)
		},
	})
}

func isFileRequest(reqPath, prefix, root string) bool {
	rel := strings.TrimPrefix(reqPath, prefix)
	if !strings.HasPrefix(rel, "/") || strings.HasSuffix(rel, "/") {
		return false
	}

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(path.Clean(rel))))
	if err != nil {
		// Let the file server report the miss.
		return true
	}
	return !info.IsDir()
}
