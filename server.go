package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sited/config"
	"sited/ctx"
	"sited/daemons/httpd"
	"sited/library/async"
	libhttpd "sited/library/httpd"
)

func New(config *config.Config) *Server {
	h := httpd.NewServer(config)
	return &Server{
		config:   config,
		http:     h,
		services: []async.Service{h},
	}
}

type Server struct {
	config   *config.Config
	http     *httpd.Server
	services []async.Service
}

// Check verifies the on-disk site layout without serving it.
func (s *Server) Check() error {
	site := s.config.Site
	for _, dir := range []string{site.Templates, site.Static} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("Site directory is unavailable, path=%q, error: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("Site path is not a directory, path=%q", dir)
		}
	}

	index := filepath.Join(site.Templates, site.Index)
	if _, err := os.Stat(index); err != nil {
		return fmt.Errorf("Index template is unavailable, path=%q, error: %w", index, err)
	}

	views := libhttpd.NewViews(site.Templates, site.Index, false)
	if err := views.Load(); err != nil {
		return fmt.Errorf("Failed to parse the index template, path=%q, error: %v", index, err)
	}
	if !views.Has(views.Name()) {
		return fmt.Errorf("Index template %q was not parsed", site.Index)
	}
	return nil
}

func (s *Server) Run(parent context.Context) error {
	c := ctx.New(parent)

	c.Log().Warn("Starting...")
	services := async.Group(s.services...)

	select {
	case <-services.Start():
	case <-c.Done():
		return services.StopAndWait()
	}
	if err := services.StartError(); err != nil {
		return err
	}
	c.Log().Warn("Started")

	<-c.Done()
	c.Log().Warn("Stopping...")
	defer c.Log().Warn("Stopped")
	return services.StopAndWait()
}
