package server

import (
	"context"
	"encoding/json"
	"log"
)

// Event type constants prevent typos in event names.
const (
	EventPostReactionUpdated = "post_reaction_updated"
	EventCommentCreated      = "comment_created"
	EventMessageReceived     = "message_received"
)

// publishUserEvent fans an event out to one user's WebSocket connections.
// With Redis the event goes through pub/sub so every instance delivers it;
// without Redis it is broadcast to this instance's hub only.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}

	if s.redis != nil && s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, event); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
		return
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, string(eventJSON))
	}
}

// publishConversationEvent fans an event out to a conversation's connected
// participants, same delivery rules as publishUserEvent.
func (s *Server) publishConversationEvent(conversationID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}

	if s.redis != nil && s.notifier != nil {
		if err := s.notifier.PublishConversation(context.Background(), conversationID, event); err != nil {
			log.Printf("failed to publish %s event to conversation %d: %v", eventType, conversationID, err)
		}
		return
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	if s.chatHub != nil {
		s.chatHub.BroadcastConversation(conversationID, string(eventJSON))
	}
}
