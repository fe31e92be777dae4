package httpd

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"sited/config"
	"sited/ctx"
	"sited/library/async"
	"sited/library/httpd"
)

const requestIDKey = "requestid"

type Server struct {
	async.Service
	config       *config.Config
	errorHandler fiber.ErrorHandler

	mu   sync.Mutex
	addr net.Addr
}

func NewServer(config *config.Config) *Server {
	s := &Server{
		config:       config,
		errorHandler: httpd.ErrorHandler(config.Debug),
	}
	s.Service = async.NewService(s.serveHTTP)
	return s
}

// Addr returns the bound listen address, or nil before the server has started.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) router() *fiber.App {
	site := s.config.Site
	app := httpd.NewApp(httpd.Options{
		Name:  "sited",
		Views: httpd.NewViews(site.Templates, site.Index, s.config.Debug),
		Debug: s.config.Debug,
	})

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(s.loggerMiddleware)
	app.Use(recover.New(recover.Config{EnableStackTrace: s.config.Debug}))

	s.static(app)
	app.Use(httpd.NotFound)
	return app
}

// Run loop

func (s *Server) serveHTTP(parent context.Context, ready func()) error {
	c := ctx.With(parent, "daemon", "httpd")
	defer c.Log().Info("HTTP stopped")

	listen := s.config.Http.Listen
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		c.Log().Errorf("Failed to listen to %s, err=%v", listen, err)
		return err
	}

	app := s.router()
	errorChan := make(chan error, 1)
	go func() {
		err := app.Listener(ln)
		c.Log().WithError(err).Debug("HTTP server exited")
		errorChan <- err
	}()

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	c.Log().Infof("HTTP listening to %v", ln.Addr())
	ready()

	select {
	case err := <-errorChan:
		c.Log().Errorf("HTTP server failed, err=%v", err)
		return err
	case <-c.Done():
	}

	c.Log().Info("Stopping HTTP...")
	shutdown := make(chan error, 1)
	go func() {
		shutdown <- app.Shutdown()
	}()

	select {
	case err := <-shutdown:
		return err
	case <-time.After(s.config.Http.ShutdownTimeout):
		return fmt.Errorf("HTTP shutdown timed out after %v", s.config.Http.ShutdownTimeout)
	}
}
