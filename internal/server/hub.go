package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tyrowin/moodsync/internal/metrics"
)

type inboundEvent struct {
	client *Client
	name   string
	data   json.RawMessage
}

type eventHandler func(c *Client, data json.RawMessage) error

// Hub is the connection registry and the event loop. Register, unregister and
// inbound events are processed one at a time by Run; chat rooms and match
// rooms live in two separate directories.
type Hub struct {
	cfg Config
	log zerolog.Logger

	clients map[string]*Client
	mutex   sync.RWMutex

	rooms       *Directory
	matches     *Directory
	roomRouter  *Router
	matchRouter *Router
	scheduler   *Scheduler
	handlers    map[string]eventHandler

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates and initializes a new Hub instance. The returned Hub is
// ready to manage WebSocket connections once Run is started.
func NewHub(cfg Config, log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		cfg:        cfg.Sanitize(),
		log:        log,
		clients:    make(map[string]*Client),
		scheduler:  NewScheduler(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent, 64),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	h.rooms = NewDirectory("room", h.roomDeleted)
	h.matches = NewDirectory("match", h.matchDeleted)
	h.roomRouter = NewRouter(h.rooms, log)
	h.matchRouter = NewRouter(h.matches, log)
	h.handlers = h.eventHandlers()
	return h
}

// Register hands c to the hub loop and returns its connection id. Clients
// with a live connection get their read/write pumps started.
func (h *Hub) Register(c *Client) string {
	h.admit(c)
	return c.id
}

// admit hands c to the hub loop. It reports false once the hub has shut down.
func (h *Hub) admit(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// Lookup returns the registered client with id.
func (h *Hub) Lookup(id string) (*Client, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

// Remove unregisters the client with id. Unknown ids are ignored.
func (h *Hub) Remove(id string) {
	if c, ok := h.Lookup(id); ok {
		h.requestUnregister(c)
	}
}

// ConnectionCount returns the number of registered clients.
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// RoomCount returns the number of live chat rooms.
func (h *Hub) RoomCount() int { return h.rooms.Len() }

// MatchCount returns the number of live match rooms.
func (h *Hub) MatchCount() int { return h.matches.Len() }

// Room returns the state of a chat room.
func (h *Hub) Room(id string) (RoomState, bool) { return h.rooms.Get(id) }

func (h *Hub) requestUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

func (h *Hub) submit(ev inboundEvent) bool {
	select {
	case h.inbound <- ev:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// Run starts the hub's main event loop, handling client registration,
// unregistration and inbound events. This method should be called in a
// separate goroutine; it returns after Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			if client == nil {
				h.log.Warn().Msg("received nil client registration; skipping")
				continue
			}
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case ev := <-h.inbound:
			h.dispatch(ev)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mutex.Lock()
	h.clients[c.id] = c
	clientCount := len(h.clients)
	h.mutex.Unlock()

	metrics.ConnectionsActive.Set(float64(clientCount))
	h.log.Info().Str("conn", c.id).Str("addr", c.addr).Int("total", clientCount).Msg("client registered")

	if c.conn == nil {
		return
	}
	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
	}()
}

func (h *Hub) removeClient(c *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, c.id)
	clientCount := len(h.clients)
	h.mutex.Unlock()

	c.markClosed()
	h.leaveRoom(c)
	h.leaveMatch(c)

	metrics.ConnectionsActive.Set(float64(clientCount))
	h.log.Info().Str("conn", c.id).Str("addr", c.addr).Int("total", clientCount).Msg("client unregistered")
}

func (h *Hub) dispatch(ev inboundEvent) {
	handler, ok := h.handlers[ev.name]
	if !ok {
		h.log.Warn().Str("conn", ev.client.id).Str("event", ev.name).Msg("unknown event ignored")
		metrics.EventsDropped.WithLabelValues("unknown").Inc()
		return
	}

	if _, registered := h.Lookup(ev.client.id); !registered {
		return
	}

	if err := handler(ev.client, ev.data); err != nil {
		h.log.Warn().Err(err).Str("conn", ev.client.id).Str("event", ev.name).Msg("event rejected")
		metrics.EventsDropped.WithLabelValues("invalid").Inc()
		return
	}
	metrics.EventsHandled.WithLabelValues(ev.name).Inc()
}

func (h *Hub) roomDeleted(roomID string) {
	if n := h.scheduler.Cancel(roomID); n > 0 {
		h.log.Debug().Str("room", roomID).Int("cancelled", n).Msg("cancelled pending companion replies")
	}
	metrics.RoomsActive.WithLabelValues("room").Set(float64(h.rooms.Len()))
	h.log.Info().Str("room", roomID).Msg("room removed - no active users")
}

func (h *Hub) matchDeleted(matchID string) {
	metrics.RoomsActive.WithLabelValues("match").Set(float64(h.matches.Len()))
	h.log.Info().Str("match", matchID).Msg("match room removed - no active users")
}

// shutdownClients gracefully closes all active client connections
func (h *Hub) shutdownClients() {
	h.log.Info().Msg("shutting down all client connections...")
	h.scheduler.Stop()

	h.mutex.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for id, client := range h.clients {
		clients = append(clients, client)
		delete(h.clients, id)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		client.markClosed()
		if client.conn != nil {
			if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
				h.log.Warn().Err(err).Str("addr", client.addr).Msg("error closing client connection")
			}
		}
	}
	h.rooms.clear()
	h.matches.clear()
	metrics.ConnectionsActive.Set(0)

	h.log.Info().Int("closed", len(clients)).Msg("closed client connections")
}

// Shutdown initiates graceful shutdown of the hub and waits for all goroutines to complete.
// It returns after all client connections are closed and goroutines have finished,
// or when the timeout is reached.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.log.Info().Msg("initiating hub shutdown...")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.log.Info().Msg("hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		h.log.Warn().Msg("hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
