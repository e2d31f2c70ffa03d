// Package spectate streams render snapshots of a running session to
// websocket clients.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

// Frame is one message on the feed.
type Frame struct {
	Seq      uint64          `json:"seq"`
	Snapshot bricks.Snapshot `json:"snapshot"`
}

// Config configures a Hub.
type Config struct {
	Interval  time.Duration // Broadcast period, 50ms when zero
	SendQueue int           // Frames buffered per client, 4 when zero
	Logger    *log.Logger
}

const writeWait = time.Second

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the latest snapshot and broadcasts it to every connected
// spectator at a fixed rate. It implements bricks.FrameSink.
type Hub struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	latest  atomic.Pointer[bricks.Snapshot]
	version atomic.Uint64

	mu      sync.Mutex
	clients map[*client]struct{}
	frame   []byte // Last encoded frame, sent to new clients
	sent    uint64
}

// NewHub creates a hub. Call Run to start broadcasting.
func NewHub(cfg Config) *Hub {
	if cfg.Interval <= 0 {
		cfg.Interval = 50 * time.Millisecond
	}
	if cfg.SendQueue <= 0 {
		cfg.SendQueue = 4
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish records the newest snapshot. It never blocks.
func (h *Hub) Publish(snap bricks.Snapshot) {
	h.latest.Store(&snap)
	h.version.Add(1)
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run broadcasts until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

func (h *Hub) broadcast() {
	v := h.version.Load()
	snap := h.latest.Load()

	h.mu.Lock()
	defer h.mu.Unlock()
	if snap == nil || v == h.sent {
		return
	}

	data, err := json.Marshal(Frame{Seq: v, Snapshot: *snap})
	if err != nil {
		h.logger.Error("cannot encode frame", "err", err)
		return
	}
	h.sent = v
	h.frame = data

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow spectators skip frames.
		}
	}
}

// ServeHTTP upgrades the request and streams frames until the client
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.cfg.SendQueue)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.frame != nil {
		c.send <- h.frame
	}
	h.mu.Unlock()
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go h.readLoop(c)
	h.writeLoop(c)
}

// readLoop discards client messages and unregisters on the first error.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// remove unregisters c and closes its queue, once.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Info("spectator left")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Serve listens on addr and serves the feed on /ws until ctx is done.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	go hub.Run(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

var _ bricks.FrameSink = (*Hub)(nil)
