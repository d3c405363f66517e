package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"scrimhub/internal/middleware"

	"github.com/gofiber/websocket/v2"
)

const maxConnsPerConversation = 16

// ChatHub fans conversation events out to the sockets currently viewing each
// conversation.
type ChatHub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
	// membership maps each client back to its conversation so unregister
	// needs no reverse scan.
	membership map[*Client]uint
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		rooms:      make(map[uint]map[*Client]struct{}),
		membership: make(map[*Client]uint),
	}
}

func (h *ChatHub) Name() string { return "chat hub" }

// Register adds a connection to a conversation's room.
func (h *ChatHub) Register(conversationID, userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[conversationID] = room
	}
	if len(room) >= maxConnsPerConversation {
		return nil, errors.New("conversation connection limit reached")
	}

	client := NewClient(h, conn, userID)
	room[client] = struct{}{}
	h.membership[client] = conversationID
	middleware.ActiveWebSockets.Inc()
	return client, nil
}

func (h *ChatHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conversationID, ok := h.membership[client]
	if !ok {
		return
	}
	delete(h.membership, client)

	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	if _, exists := room[client]; !exists {
		return
	}
	delete(room, client)
	middleware.ActiveWebSockets.Dec()
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}

// BroadcastConversation sends message to everyone in the conversation's room.
func (h *ChatHub) BroadcastConversation(conversationID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[conversationID]; ok {
		data := []byte(message)
		for c := range room {
			c.TrySend(data)
		}
	}
}

// StartWiring forwards Redis conversation events into the hub.
func (h *ChatHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartChatSubscriber(ctx, func(channel, payload string) {
		if !strings.HasPrefix(channel, "chat:conv:") {
			log.Printf("invalid chat channel: %s", channel)
			return
		}
		var conversationID uint
		if _, err := fmt.Sscanf(channel, "chat:conv:%d", &conversationID); err != nil {
			log.Printf("invalid chat channel: %s", channel)
			return
		}
		h.BroadcastConversation(conversationID, payload)
	})
}

// Shutdown closes every chat websocket.
func (h *ChatHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			delete(h.membership, client)
			middleware.ActiveWebSockets.Dec()
			if client.Conn != nil {
				_ = client.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down"))
				_ = client.Conn.Close()
			}
		}
	}
	h.rooms = make(map[uint]map[*Client]struct{})
	return nil
}
