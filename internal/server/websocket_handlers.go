// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"scrimhub/internal/middleware"
	"scrimhub/internal/models"
	"scrimhub/internal/notifications"
	"scrimhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// wsTicketTTL is how long an issued WebSocket ticket stays redeemable.
const wsTicketTTL = 30 * time.Second

// IssueWSTicket handles POST /api/ws/ticket. Browsers cannot set an
// Authorization header on a WebSocket upgrade, so the client trades its JWT
// for a short-lived single-use ticket passed as a query parameter.
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("ticket store unavailable")))
	}

	ticket := uuid.New().String()
	key := fmt.Sprintf("ws_ticket:%s", ticket)
	if err := s.redis.Set(c.Context(), key, strconv.FormatUint(uint64(userID), 10), wsTicketTTL).Err(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// WebsocketHandler handles GET /api/ws: the notification delivery channel.
// Receive-only; notifications and user events arrive as JSON frames.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		middleware.Logger.InfoContext(context.Background(), "websocket connected",
			"user_id", userID)

		welcome, _ := json.Marshal(fiber.Map{
			"type":    "connected",
			"payload": fiber.Map{"user_id": userID},
		})
		client.TrySend(welcome)

		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}

// WebSocketChatHandler handles GET /api/ws/chat?conversation_id=N: a live
// feed of one conversation. The caller must be a participant.
func (s *Server) WebSocketChatHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		convID64, err := strconv.ParseUint(conn.Query("conversation_id"), 10, 32)
		if err != nil || convID64 == 0 {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"conversation_id is required"}`))
			_ = conn.Close()
			return
		}
		convID := uint(convID64)

		ok, err := s.chatRepo.IsParticipant(ctx, convID, userID)
		if err != nil || !ok {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"forbidden"}`))
			_ = conn.Close()
			return
		}

		if s.chatHub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.chatHub.Register(convID, userID, conn)
		if err != nil {
			log.Printf("WebSocket Chat: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Messages can also be sent over the socket instead of the HTTP endpoint.
		client.IncomingHandler = func(cl *notifications.Client, raw []byte) {
			var incoming struct {
				Type    string `json:"type"`
				Content string `json:"content"`
			}
			if err := json.Unmarshal(raw, &incoming); err != nil {
				return
			}
			if incoming.Type != "message" || incoming.Content == "" {
				return
			}

			// Same rate limit as the HTTP endpoint
			id := fmt.Sprintf("user:%d", userID)
			allowed, _ := middleware.CheckRateLimit(ctx, s.redis, "send_chat", id, 15, time.Minute)
			if !allowed {
				notice, _ := json.Marshal(fiber.Map{
					"type":    "error",
					"payload": fiber.Map{"message": "Rate limit exceeded. Please wait a moment."},
				})
				cl.TrySend(notice)
				return
			}

			message, err := s.chatService.SendMessage(ctx, service.SendMessageInput{
				SenderID:       userID,
				ConversationID: convID,
				Content:        incoming.Content,
			})
			if err != nil {
				notice, _ := json.Marshal(fiber.Map{
					"type":    "error",
					"payload": fiber.Map{"message": err.Error()},
				})
				cl.TrySend(notice)
				return
			}

			s.publishConversationEvent(convID, EventMessageReceived, map[string]interface{}{
				"conversation_id": convID,
				"message":         message,
			})
		}

		welcome, _ := json.Marshal(fiber.Map{
			"type":    "connected",
			"payload": fiber.Map{"user_id": userID, "conversation_id": convID},
		})
		client.TrySend(welcome)

		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}
