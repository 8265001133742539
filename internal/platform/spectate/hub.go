package spectate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/starbird/internal/games/starbird"
)

const (
	writeWait      = 2 * time.Second
	pongWait       = 30 * time.Second
	pingInterval   = pongWait * 9 / 10
	clientBacklog  = 4
	defaultRefresh = 50 * time.Millisecond
)

// Options configures a Hub.
type Options struct {
	// Interval is the minimum time between two published frames.
	Interval time.Duration
	Logger   *log.Logger
}

// Hub fans encoded frames out to every connected spectator. Publish never
// blocks: a spectator that cannot keep up loses frames.
type Hub struct {
	upgrader websocket.Upgrader
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    time.Time
	latest  []byte
	closed  bool
}

// client wraps one connection. Writes only happen on its own goroutine.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a Hub.
func NewHub(opts Options) *Hub {
	if opts.Interval <= 0 {
		opts.Interval = defaultRefresh
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: opts.Interval,
		logger:   opts.Logger,
		clients:  make(map[*client]struct{}),
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish encodes s and queues it for every spectator. Frames arriving
// faster than the hub interval are dropped, except game-over frames.
// It reports whether the frame was sent.
func (h *Hub) Publish(s starbird.Snapshot) bool {
	now := time.Now()

	h.mu.Lock()
	if h.closed || (!s.GameOver && now.Sub(h.last) < h.interval) {
		h.mu.Unlock()
		return false
	}
	h.last = now
	h.mu.Unlock()

	data, err := Encode(FromSnapshot(s))
	if err != nil {
		h.logger.Error("frame dropped", "err", err)
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("spectator lagging, frame dropped", "addr", c.conn.RemoteAddr())
		}
	}
	return true
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// the spectator leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBacklog)}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.logger.Info("spectator joined", "addr", conn.RemoteAddr())

	go h.writeLoop(c)
	h.readLoop(c)

	h.unregister(c)
	h.logger.Info("spectator left", "addr", conn.RemoteAddr())
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// readLoop discards incoming messages; it only exists to notice the
// spectator going away and to handle pongs.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				h.logger.Debug("spectator write failed", "err", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

// Handler returns the HTTP routes served by the hub: /ws for frames and
// /healthz for probes.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok\n")
	})
	return mux
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
