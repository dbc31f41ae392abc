package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tideui/tide/internal/errors"
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/runtime"
	"github.com/tideui/tide/pkg/vdom"
	"github.com/tideui/tide/pkg/wire"
)

// Session is one connected client: a private renderer over a Recorder,
// a single loop goroutine running all component code, and the patch
// stream back to the client.
type Session struct {
	ID string

	conn   *websocket.Conn
	config *Config
	logger *slog.Logger

	rec *wire.Recorder
	app *runtime.App

	events  chan *wire.Event
	done    chan struct{}
	closed  atomic.Bool
	writeMu sync.Mutex

	sendSeq atomic.Uint64

	metrics *metrics
	tracer  trace.Tracer
	onClose func(*Session)
}

func newSession(id string, conn *websocket.Conn, root vdom.Component, cfg *Config,
	logger *slog.Logger, m *metrics, tracer trace.Tracer) *Session {

	s := &Session{
		ID:      id,
		conn:    conn,
		config:  cfg,
		logger:  logger.With("session_id", id),
		rec:     wire.NewRecorder(),
		events:  make(chan *wire.Event, cfg.MaxEventQueue),
		done:    make(chan struct{}),
		metrics: m,
		tracer:  tracer,
	}
	s.app = runtime.NewApp(s.rec, root,
		runtime.WithAppLogger(s.logger),
		runtime.WithAppErrorHandler(func(err error) {
			s.logger.Error("uncaught component error", "error", err)
			s.sendError(err)
		}),
	)
	return s
}

// App returns the session's application handle.
func (s *Session) App() *runtime.App {
	return s.app
}

// Dispatch runs fn on the session loop. The only safe way to touch this
// session's signals from another goroutine.
func (s *Session) Dispatch(fn func()) {
	s.app.Dispatch(fn)
}

// Start mounts the root and spawns the session goroutines.
func (s *Session) Start() {
	s.app.Mount(s.rec.Container())
	s.flushPatches()

	// The mount ran on the caller's goroutine; drop its per-goroutine
	// render state so session churn does not accumulate entries.
	reactive.CleanupGoroutineContext()
	vdom.CleanupGoroutineState()

	go s.readLoop()
	go s.heartbeatLoop()
	go s.loop()
}

// loop is the session's single event loop: client events, dispatched
// closures, and effect flushes all run here, in arrival order. The
// teardown also runs here, after the last event, so unmount never races
// an in-flight handler.
func (s *Session) loop() {
	defer s.teardown()

	queue := s.app.Renderer().Queue()
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case <-s.app.Renderer().DispatchNotify():
			s.app.FlushSync()
			s.flushPatches()

		case <-queue.Notify():
			s.app.Renderer().FlushSync()
			s.flushPatches()

		case <-s.done:
			return
		}
	}
}

func (s *Session) teardown() {
	s.app.Unmount()
	reactive.CleanupGoroutineContext()
	vdom.CleanupGoroutineState()
	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("session closed")
}

// readLoop reads frames off the connection until it closes.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.metrics.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}

		frame, err := wire.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.metrics.wsErrors.WithLabelValues("decode").Inc()
			continue
		}

		switch frame.Type {
		case wire.FrameEvent:
			s.queueEvent(frame)

		case wire.FrameControl:
			s.handleControl(frame)

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (s *Session) queueEvent(frame *wire.Frame) {
	ev, err := wire.DecodeEvent(frame)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		s.sendError(errors.New(errors.ErrDecodeFrame))
		return
	}

	select {
	case s.events <- ev:
	default:
		s.metrics.eventsTotal.WithLabelValues("dropped").Inc()
		s.sendError(errors.Newf(errors.CategoryProtocol, "event queue full"))
	}
}

func (s *Session) handleControl(frame *wire.Frame) {
	c, err := wire.DecodeControl(frame)
	if err != nil {
		s.logger.Error("control decode error", "error", err)
		return
	}
	switch c.Kind {
	case "ping":
		s.writeFrameEncoded(wire.EncodeControl(&wire.Control{Kind: "pong"}))
	case "pong":
		// Client answered our heartbeat.
	case "resync":
		// The mirror holds the full tree; a resync is a fresh snapshot of
		// its serialized form. Runs on the session loop.
		s.Dispatch(func() {
			s.logger.Info("resync requested")
		})
	}
}

// handleEvent dispatches one client event to its handler and streams the
// resulting patches. A span wraps the whole cycle.
func (s *Session) handleEvent(ev *wire.Event) {
	start := time.Now()
	_, span := s.tracer.Start(context.Background(), "tide.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("tide.session_id", s.ID),
			attribute.String("tide.event_name", ev.Name),
			attribute.Int64("tide.event_node", int64(ev.Node)),
		),
	)
	defer span.End()

	status := "success"
	defer func() {
		if r := recover(); r != nil {
			status = "panic"
			s.logger.Error("event handler panic", "panic", r, "event", ev.Name)
		}
		s.metrics.eventsTotal.WithLabelValues(status).Inc()
		s.metrics.eventDuration.Observe(time.Since(start).Seconds())
	}()

	node := s.rec.NodeByID(ev.Node)
	if node == nil {
		status = "stale"
		span.SetStatus(codes.Error, "unknown node")
		s.sendError(errors.New(errors.ErrUnknownEvent).
			WithDetailf("node %d no longer exists", ev.Node))
		return
	}

	invoker := s.app.Renderer().InvokerFor(node, ev.Name)
	if invoker == nil {
		status = "stale"
		span.SetStatus(codes.Error, "no handler")
		s.sendError(errors.New(errors.ErrUnknownEvent).
			WithDetailf("no %s handler on node %d", ev.Name, ev.Node))
		return
	}

	if len(ev.Payload) > 0 {
		invoker.Call(ev.Payload)
	} else {
		invoker.Call()
	}

	s.app.FlushSync()
	patches := s.flushPatches()
	span.SetAttributes(attribute.Int("tide.patch_count", patches))
	span.SetStatus(codes.Ok, "")
}

// flushPatches drains the recorder and sends one PatchBatch frame.
// Returns the number of patches sent.
func (s *Session) flushPatches() int {
	patches := s.rec.Take()
	if len(patches) == 0 {
		return 0
	}

	batch := &wire.PatchBatch{
		Seq:     s.sendSeq.Add(1),
		Patches: patches,
	}
	frame, err := wire.EncodePatchBatch(batch)
	if err != nil {
		s.logger.Error("patch encode error", "error", err, "patches", len(patches))
		return 0
	}
	if s.writeFrame(frame) {
		s.metrics.patchesSent.Add(float64(len(patches)))
		s.metrics.patchBytes.Add(float64(len(frame.Payload)))
	}
	return len(patches)
}

func (s *Session) sendError(err error) {
	msg := &wire.ErrorMessage{Message: err.Error()}
	if te, ok := err.(*errors.TideError); ok {
		msg.Code = te.Code
	}
	s.writeFrameEncoded(wire.EncodeError(msg))
}

func (s *Session) writeFrameEncoded(frame *wire.Frame, err error) {
	if err != nil {
		s.logger.Error("encode error", "error", err)
		return
	}
	s.writeFrame(frame)
}

func (s *Session) writeFrame(frame *wire.Frame) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return false
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.logger.Error("write error", "error", err)
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		s.closeLocked()
		return false
	}
	return true
}

func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeFrameEncoded(wire.EncodeControl(&wire.Control{Kind: "ping"}))
		case <-s.done:
			return
		}
	}
}

// Close shuts the session down: closes the socket and signals the loop,
// which unmounts the tree and notifies the manager. Idempotent.
func (s *Session) Close() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	// Only signal here: the loop goroutine observes done and runs the
	// teardown itself, after whatever event it is currently handling.
	close(s.done)
	s.conn.Close()
}

// IsClosed reports whether the session is shut down.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}
