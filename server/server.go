// Package server exposes a Session over HTTP and streams notifications to
// websocket clients.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ZaguanLabs/framelai"
	"github.com/ZaguanLabs/framelai/notify"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server serves the HTTP API for a single session.
type Server struct {
	session  *framelai.Session
	hub      *notify.Hub
	logger   *zap.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	translateTimeout time.Duration
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// DefaultTranslateTimeout bounds translate requests unless WithTranslateTimeout
// sets another limit.
const DefaultTranslateTimeout = 2 * time.Minute

// WithTranslateTimeout bounds how long a translate request may run.
// Non-positive values keep the default.
func WithTranslateTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.translateTimeout = d
		}
	}
}

// New creates a server for session. hub must be the notifier the session was
// built with so websocket clients see its notifications.
func New(session *framelai.Session, hub *notify.Hub, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		session: session,
		hub:     hub,
		logger:  logger,
		router:  mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		translateTimeout: DefaultTranslateTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/frames", s.handleFrames).Methods("GET")
	api.HandleFunc("/state", s.handleState).Methods("GET")
	api.HandleFunc("/selection/{id}", s.handleSelection).Methods("PUT")
	api.HandleFunc("/translate", s.handleTranslate).Methods("POST")
	api.HandleFunc("/languages", s.handleLanguages).Methods("GET")
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
