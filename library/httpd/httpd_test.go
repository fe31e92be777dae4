package httpd

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"sited/schema"
)

func do(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func newTestApp(t *testing.T, debug bool) *fiber.App {
	app := NewApp(Options{Name: "test", Views: NewViews(t.TempDir(), "index.html", false), Debug: debug})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return schema.NewNotFoundError("asset %q", "a.js")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("disk on fire")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Use(NotFound)
	return app
}

func TestErrorHandlerProduction(t *testing.T) {
	app := newTestApp(t, false)

	cases := []struct {
		target string
		status int
	}{
		{"/missing", http.StatusNotFound},
		{"/plain", http.StatusInternalServerError},
		{"/teapot", http.StatusTeapot},
		{"/nowhere", http.StatusNotFound},
	}
	for _, c := range cases {
		resp, body := do(t, app, c.target)
		if resp.StatusCode != c.status {
			t.Errorf("%s: got status %d, want %d", c.target, resp.StatusCode, c.status)
		}
		if body != http.StatusText(c.status) {
			t.Errorf("%s: production body must be the status text, got %q", c.target, body)
		}
	}
}

func TestErrorHandlerDebug(t *testing.T) {
	app := newTestApp(t, true)

	_, body := do(t, app, "/missing")
	if body != `not_found: asset "a.js"` {
		t.Errorf("Wrong debug body %q", body)
	}

	_, body = do(t, app, "/plain")
	if !strings.Contains(body, "disk on fire") {
		t.Errorf("Debug body must carry the error, got %q", body)
	}

	_, body = do(t, app, "/teapot")
	if body != "short and stout" {
		t.Errorf("Wrong debug body %q", body)
	}
}

func TestMountStatic(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "js", "app.js"), []byte("let a = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := NewApp(Options{Views: NewViews(root, "index.html", false)})
	MountStatic(app, "/assets", root, time.Second)
	app.Use(NotFound)

	resp, body := do(t, app, "/assets/js/app.js")
	if resp.StatusCode != http.StatusOK || body != "let a = 1;" {
		t.Errorf("Got %d %q", resp.StatusCode, body)
	}

	resp, _ = do(t, app, "/assets/js/none.js")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Missing asset: got %d", resp.StatusCode)
	}

	// Directories are neither listed nor resolved to their index page.
	if err := os.WriteFile(filepath.Join(root, "js", "index.html"), []byte("jsindex"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, target := range []string{"/assets/js/", "/assets/js", "/assets/"} {
		resp, body = do(t, app, target)
		if resp.StatusCode != http.StatusNotFound || strings.Contains(body, "jsindex") {
			t.Errorf("%s: got %d %q", target, resp.StatusCode, body)
		}
	}
}

func TestIsFileRequest(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.js"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]bool{
		"/static/a.js":    true,
		"/static/none.js": true,
		"/static/sub":     false,
		"/static/sub/":    false,
		"/static/":        false,
		"/static":         false,
		"/statica.js":     false,
	}
	for reqPath, want := range cases {
		if got := isFileRequest(reqPath, "/static", root); got != want {
			t.Errorf("%s: got %v, want %v", reqPath, got, want)
		}
	}
}

func TestNewViewsReload(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.html")
	if err := os.WriteFile(index, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	views := NewViews(dir, "index.html", true)
	var out strings.Builder
	if err := views.Render(&out, "index", nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "v1" {
		t.Fatalf("Got %q", out.String())
	}

	if err := os.WriteFile(index, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := views.Render(&out, "index", nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "v2" {
		t.Errorf("Reload ignored, got %q", out.String())
	}
}

func TestViewsOnlyParseTheIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Hello</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.html"), []byte("{{ if }"), 0o644); err != nil {
		t.Fatal(err)
	}

	views := NewViews(dir, "index.html", false)
	if err := views.Load(); err != nil {
		t.Fatalf("A broken sibling must not fail the load: %v", err)
	}
	if !views.Has("index") || views.Has("broken") {
		t.Errorf("Wrong template set")
	}

	var out strings.Builder
	if err := views.Render(&out, views.Name(), nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "<h1>Hello</h1>" {
		t.Errorf("Got %q", out.String())
	}
}

func TestViewsMissingIndex(t *testing.T) {
	views := NewViews(t.TempDir(), "index.html", true)

	var out strings.Builder
	if err := views.Render(&out, "index", nil); err == nil {
		t.Errorf("Expected an error for a missing index")
	}
	if views.Has("index") {
		t.Errorf("Missing index reported as loaded")
	}
}

func TestViewsConcurrentReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("page"), 0o644); err != nil {
		t.Fatal(err)
	}
	views := NewViews(dir, "index.html", true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				var out strings.Builder
				if err := views.Render(&out, "index", nil); err != nil || out.String() != "page" {
					t.Errorf("Got %q, err=%v", out.String(), err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
