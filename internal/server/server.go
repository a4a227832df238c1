// Package server hosts a bound progress bar over HTTP. It serves the
// rendered widget, accepts record writes and clicks, and pushes every state
// change to websocket clients.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/config"
	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Widget is the part of the binding controller the server drives.
type Widget interface {
	State() binding.State
	Config() config.Widget
	HandleClick(ctx context.Context)
}

// Records is the record host the server writes through.
type Records interface {
	Snapshot(id string) (map[string]any, bool)
	Commit(id string, values map[string]any) error
}

// Option customises a Server.
type Option func(*Server)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// Server is the HTTP host. Create it, build the controller with
// binding.WithOnChange(srv.Notify), then Attach the controller.
type Server struct {
	records Records
	log     *logger.Logger
	hub     *hub
	engine  *gin.Engine

	mu     sync.RWMutex
	widget Widget
	ctx    context.Context
}

// New builds the server and its routes.
func New(records Records, opts ...Option) *Server {
	s := &Server{
		records: records,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = newHub(s.log)
	s.engine = s.routes()
	return s
}

// Attach sets the widget the server renders and clicks.
func (s *Server) Attach(w Widget) {
	s.mu.Lock()
	s.widget = w
	s.mu.Unlock()
}

// Notify pushes st to every websocket client. It is meant for
// binding.WithOnChange.
func (s *Server) Notify(st binding.State) {
	w := s.current()
	if w == nil {
		return
	}
	s.hub.broadcast(render.Build(st, w.Config()))
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Clients reports the number of connected websocket clients.
func (s *Server) Clients() int {
	return s.hub.size()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Clicks started over HTTP are bound to ctx.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.With("addr", addr).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.hub.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(httpServer.Shutdown(shutdownCtx), "shutdown")
	})
	return g.Wait()
}

func (s *Server) current() Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.widget
}

func (s *Server) clickContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}
