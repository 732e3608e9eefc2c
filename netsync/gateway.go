package netsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWriteQueue  = 256
	defaultIntentQueue = 1024
	defaultReadLimit   = 64 << 10
)

var (
	ErrUnknownSession = errors.New("netsync: unknown session")
	// ErrBackpressure is returned when a session's write queue is full.
	ErrBackpressure = errors.New("netsync: write queue full")
)

// Intent is one decoded client message waiting for the simulation tick.
type Intent struct {
	Session  uuid.UUID
	Envelope Envelope
}

type GatewayOptions struct {
	Log         zerolog.Logger
	WriteQueue  int
	IntentQueue int
	// InsecureSkipVerify disables the websocket origin check.
	InsecureSkipVerify bool
}

// Gateway accepts player websockets. Connections run their own read and
// write goroutines; intents are queued until the tick goroutine drains them.
type Gateway struct {
	log         zerolog.Logger
	writeQueue  int
	intentLimit int
	skipVerify  bool

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	intents  []Intent
	dropped  int
}

type session struct {
	id      uuid.UUID
	writeCh chan []byte
}

func NewGateway(opts GatewayOptions) *Gateway {
	if opts.WriteQueue <= 0 {
		opts.WriteQueue = defaultWriteQueue
	}
	if opts.IntentQueue <= 0 {
		opts.IntentQueue = defaultIntentQueue
	}
	return &Gateway{
		log:         opts.Log.With().Str("component", "gateway").Logger(),
		writeQueue:  opts.WriteQueue,
		intentLimit: opts.IntentQueue,
		skipVerify:  opts.InsecureSkipVerify,
		sessions:    make(map[uuid.UUID]*session),
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: g.skipVerify,
	})
	if err != nil {
		g.log.Warn().Err(err).Msg("accept failed")
		return
	}
	conn.SetReadLimit(defaultReadLimit)

	s := &session{id: uuid.New(), writeCh: make(chan []byte, g.writeQueue)}
	g.mu.Lock()
	g.sessions[s.id] = s
	g.mu.Unlock()
	log := g.log.With().Stringer("session", s.id).Logger()
	log.Debug().Msg("session opened")

	err = g.run(r.Context(), conn, s, log)

	g.mu.Lock()
	delete(g.sessions, s.id)
	g.intents = append(g.intents, Intent{Session: s.id, Envelope: Envelope{Kind: KindLeave}})
	g.mu.Unlock()

	status := websocket.CloseStatus(err)
	switch {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		log.Debug().Msg("session closed")
	case errors.Is(err, context.Canceled):
		log.Debug().Msg("session cancelled")
	default:
		log.Info().Err(err).Msg("session closed")
	}
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (g *Gateway) run(ctx context.Context, conn *websocket.Conn, s *session, log zerolog.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.readLoop(ctx, conn, s, log)
	})
	eg.Go(func() error {
		return writeLoop(ctx, conn, s)
	})
	return eg.Wait()
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, s *session, log zerolog.Logger) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		env, err := Decode(data)
		if err != nil {
			log.Warn().Err(err).Msg("dropping malformed message")
			continue
		}
		if env.Kind == KindLeave {
			continue
		}
		g.enqueue(Intent{Session: s.id, Envelope: env}, log)
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, s *session) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-s.writeCh:
			if err := conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				return err
			}
		}
	}
}

func (g *Gateway) enqueue(in Intent, log zerolog.Logger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.intents) >= g.intentLimit {
		g.dropped++
		log.Warn().Str("kind", string(in.Envelope.Kind)).Int("dropped", g.dropped).Msg("intent queue full")
		return
	}
	g.intents = append(g.intents, in)
}

// Drain returns every queued intent in arrival order and empties the queue.
func (g *Gateway) Drain() []Intent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.intents
	g.intents = nil
	return out
}

// Sessions returns the number of open connections.
func (g *Gateway) Sessions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// Send queues a message for one session without blocking.
func (g *Gateway) Send(id uuid.UUID, kind Kind, body any) error {
	data, err := Encode(kind, body)
	if err != nil {
		return err
	}
	g.mu.Lock()
	s, ok := g.sessions[id]
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s.push(data)
}

// Broadcast queues a message for every session. Sessions whose queue is full
// miss it; the first such error is returned after the others are served.
func (g *Gateway) Broadcast(kind Kind, body any) error {
	data, err := Encode(kind, body)
	if err != nil {
		return err
	}
	g.mu.Lock()
	targets := make([]*session, 0, len(g.sessions))
	for _, s := range g.sessions {
		targets = append(targets, s)
	}
	g.mu.Unlock()

	var first error
	for _, s := range targets {
		if err := s.push(data); err != nil && first == nil {
			first = fmt.Errorf("%w: %s", err, s.id)
		}
	}
	return first
}

func (s *session) push(data []byte) error {
	select {
	case s.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}
