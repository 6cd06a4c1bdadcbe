package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/diwise/water-monitoring/internal/pkg/application/events"
	"github.com/diwise/water-monitoring/pkg/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	// subscriber frames are single json objects, nothing near this size
	maxFrameSize = 512

	sendBuffer = 64
)

// Message is the frame format exchanged with subscribers. Event frames are
// marshalled from types.Event directly and share the type and data keys.
type Message struct {
	Type   string `json:"type"`
	Data   any    `json:"data,omitzero"`
	Detail string `json:"detail,omitzero"`
}

// Hub tracks connected subscribers. Fan out per scope is handled by the
// event bus, so the hub only keeps the live set for bookkeeping and for
// closing everything down when the service stops.
type Hub struct {
	log *slog.Logger
	bus *events.EventBus

	replayLimit int

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *slog.Logger, bus *events.EventBus, replayLimit int) *Hub {
	return &Hub{
		log:         log,
		bus:         bus,
		replayLimit: replayLimit,
		clients:     map[*client]struct{}{},
	}
}

func (h *Hub) attach(conn *websocket.Conn, scope string, replayLimit int) {
	c := &client{
		hub:   h,
		conn:  conn,
		sub:   h.bus.Subscribe(scope),
		send:  make(chan []byte, sendBuffer),
		done:  make(chan struct{}),
		id:    fmt.Sprintf("subscriber-%d", time.Now().UnixNano()),
		scope: scope,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("subscriber connected", slog.String("subscriber", c.id), slog.String("scope", scope), slog.Int("total", count))

	// the replay frame is enqueued before the forward pump starts, so it is
	// always the first frame a subscriber sees
	recent := make([]types.Event, 0)
	if replayLimit > 0 {
		recent = h.bus.Recent(scope, replayLimit)
	}
	c.enqueueMessage(Message{Type: "replay", Data: recent})

	go c.writePump()
	go c.forward()
	go c.readPump()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, known := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if known {
		h.bus.Unsubscribe(c.sub)
		h.log.Debug("subscriber disconnected", slog.String("subscriber", c.id), slog.String("scope", c.scope))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.close()
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	sub  *events.Subscriber

	send chan []byte
	done chan struct{}
	once sync.Once

	id    string
	scope string
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// enqueue hands a frame to the write pump without ever blocking. A full send
// buffer means the subscriber stopped reading, so the session is torn down.
func (c *client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	case <-c.done:
	default:
		c.close()
	}
}

func (c *client) enqueueMessage(msg Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		c.hub.log.Error("failed to marshal subscriber frame", slog.String("err", err.Error()))
		return
	}

	c.enqueue(frame)
}

// forward pumps events from the bus subscription into the send buffer. The
// loop ends when the bus drops or releases the subscription.
func (c *client) forward() {
	for event := range c.sub.Events() {
		frame, err := json.Marshal(event)
		if err != nil {
			c.hub.log.Error("failed to marshal event", slog.String("err", err.Error()))
			continue
		}

		c.enqueue(frame)
	}

	c.close()
}

func (c *client) readPump() {
	defer func() {
		c.close()
		c.conn.Close()
		c.hub.remove(c)
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(frame, &msg); err != nil {
			c.enqueueMessage(Message{Type: "error", Detail: "unparseable message"})
			continue
		}

		switch msg.Type {
		case "ping":
			c.enqueueMessage(Message{Type: "pong"})
		default:
			c.enqueueMessage(Message{Type: "error", Detail: "unsupported message type"})
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
