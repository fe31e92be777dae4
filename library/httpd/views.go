package httpd

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/template/html"
)

// Views renders a single page template out of dir. Other files in dir are
// never parsed. Load and Render are serialised.
type Views struct {
	mu     sync.Mutex
	engine *html.Engine
	name   string
}

// NewViews serves the template file index from dir. With reload set, the
// template is parsed again on every render.
func NewViews(dir, index string, reload bool) *Views {
	ext := filepath.Ext(index)
	root := pageFS{
		fs:   http.Dir(dir),
		page: path.Clean("/" + index),
	}

	engine := html.NewFileSystem(root, ext)
	engine.Reload(reload)
	engine.Debug(reload)

	return &Views{
		engine: engine,
		name:   strings.TrimSuffix(index, ext),
	}
}

// Name is the template name Render expects for the page.
func (v *Views) Name() string {
	return v.name
}

func (v *Views) Load() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Load()
}

func (v *Views) Render(out io.Writer, name string, binding interface{}, layout ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Render(out, name, binding, layout...)
}

// Has reports whether the page template loaded and parsed.
func (v *Views) Has(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.engine.Load(); err != nil {
		return false
	}
	return v.engine.Templates != nil && v.engine.Templates.Lookup(name) != nil
}

// pageFS exposes the root directory with only the page file in it.
type pageFS struct {
	fs   http.FileSystem
	page string
}

func (p pageFS) Open(name string) (http.File, error) {
	switch path.Clean("/" + name) {
	case "/":
		dir, err := p.fs.Open("/")
		if err != nil {
			return nil, err
		}
		return &pageDir{File: dir, page: path.Base(p.page)}, nil
	case p.page:
		return p.fs.Open(p.page)
	}
	return nil, fs.ErrNotExist
}

type pageDir struct {
	http.File
	page string
	read bool
}

func (d *pageDir) Readdir(count int) ([]fs.FileInfo, error) {
	if d.read {
		if count > 0 {
			return nil, io.EOF
		}
		return nil, nil
	}
	d.read = true

	infos, err := d.File.Readdir(-1)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.Name() == d.page && !info.IsDir() {
			return []fs.FileInfo{info}, nil
		}
	}
	if count > 0 {
		return nil, io.EOF
	}
	return nil, nil
}
