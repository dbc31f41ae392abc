package live

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tideui/tide/pkg/vdom"
	"github.com/tideui/tide/pkg/wire"
)

// Server accepts WebSocket connections and runs one Session per client.
type Server struct {
	config   *Config
	root     func() vdom.Component
	sessions *Manager
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *metrics
	tracer   trace.Tracer

	httpServer *http.Server
}

// NewServer creates a live server. root is called once per session to
// build that session's root component, so per-session state lives in
// the component value.
func NewServer(config *Config, root func() vdom.Component) *Server {
	config = config.withDefaults()
	logger := slog.Default().With("component", "live")

	if err := config.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
	}

	m := newMetrics(config.Registry)
	return &Server{
		config:   config,
		root:     root,
		sessions: NewManager(config.MaxSessions, logger, m),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("tide/live"),
	}
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// Handler returns the HTTP handler: the live WebSocket endpoint plus
// health and metrics routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/live", s.handleWebSocket)

	return r
}

// handleWebSocket upgrades the connection, exchanges hellos, and starts
// a session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}

	conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		s.logger.Error("hello read failed", "error", err)
		conn.Close()
		return
	}
	frame, err := wire.DecodeFrame(msg)
	if err != nil || frame.Type != wire.FrameHello {
		s.logger.Error("invalid hello frame", "error", err)
		conn.Close()
		return
	}
	hello, err := wire.DecodeHello(frame)
	if err != nil || hello.Version != wire.ProtocolVersion {
		s.logger.Error("hello rejected", "error", err, "version", hello.Version)
		conn.Close()
		return
	}

	session := newSession(newSessionID(), conn, s.root(), s.config, s.logger, s.metrics, s.tracer)
	session.onClose = func(sess *Session) {
		s.sessions.Remove(sess.ID)
	}

	if err := s.sessions.Add(session); err != nil {
		s.logger.Warn("session rejected", "error", err)
		conn.Close()
		return
	}

	reply, err := wire.EncodeHello(&wire.Hello{
		Version:   wire.ProtocolVersion,
		SessionID: session.ID,
	})
	if err != nil {
		s.logger.Error("hello encode failed", "error", err)
		s.sessions.Remove(session.ID)
		conn.Close()
		return
	}
	session.writeFrame(reply)

	s.logger.Info("session started", "session_id", session.ID)
	session.Start()
}

// Run starts the server and blocks until a signal or listen error.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
