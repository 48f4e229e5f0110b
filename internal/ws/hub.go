package ws

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gatorkeys/pkg/logger"
)

// Hub holds connections and subscribes to Redis channels so events
// reach users connected to other instances.
type Hub struct {
	rdb    *redis.Client
	logger logger.Logger

	clients    map[uuid.UUID]map[*Client]bool // userID -> set of clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan *event
}

type event struct {
	TargetUser uuid.UUID
	Payload    []byte
}

func NewHub(rdb *redis.Client, logger logger.Logger) *Hub {
	h := &Hub{
		rdb:        rdb,
		logger:     logger,
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *event, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	// cross-instance fan-out: every instance delivers to its own local
	// connections for the target user
	if h.rdb != nil {
		pubsub := h.rdb.PSubscribe(context.Background(), "user:*")
		ch := pubsub.Channel()
		go func() {
			for msg := range ch {
				id, err := uuid.Parse(strings.TrimPrefix(msg.Channel, "user:"))
				if err != nil {
					continue
				}
				h.broadcast <- &event{TargetUser: id, Payload: []byte(msg.Payload)}
			}
		}()
	}

	for {
		select {
		case c := <-h.register:
			if _, ok := h.clients[c.userID]; !ok {
				h.clients[c.userID] = make(map[*Client]bool)
			}
			h.clients[c.userID][c] = true
			h.logger.Debug("client registered", "user", c.userID)
		case c := <-h.unregister:
			if conns, ok := h.clients[c.userID]; ok {
				if _, exists := conns[c]; exists {
					delete(conns, c)
					close(c.send)
				}
				if len(conns) == 0 {
					delete(h.clients, c.userID)
				}
			}
		case e := <-h.broadcast:
			if conns, ok := h.clients[e.TargetUser]; ok {
				for c := range conns {
					select {
					case c.send <- e.Payload:
					default:
						close(c.send)
						delete(conns, c)
					}
				}
			}
		}
	}
}

func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// NotifyUser publishes a payload for a user across all instances. When
// redis is absent delivery falls back to local connections only.
func (h *Hub) NotifyUser(ctx context.Context, userID uuid.UUID, payload []byte) {
	if h.rdb != nil {
		if err := h.rdb.Publish(ctx, "user:"+userID.String(), payload).Err(); err == nil {
			return
		}
		h.logger.Warn("redis publish failed, delivering locally", "user", userID)
	}
	h.broadcast <- &event{TargetUser: userID, Payload: payload}
}
