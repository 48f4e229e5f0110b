package chat

import (
	"time"

	"github.com/google/uuid"
)

// Input commands
type SendMessageCommand struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID  // ignored when ThreadID is set
	ThreadID   *uuid.UUID // relational variant; receiver derived from thread
	Body       string
}

// Output DTOs
type MessageDTO struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	Body       string     `json:"body"`
	Read       bool       `json:"read"`
	ThreadID   *uuid.UUID `json:"thread_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ConversationSummary is derived per correspondent on every query and is
// never persisted.
type ConversationSummary struct {
	OtherUserID   uuid.UUID `json:"other_user_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

type ThreadDTO struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	UserLowID  uuid.UUID `json:"user_a"`
	UserHighID uuid.UUID `json:"user_b"`
	CreatedAt  time.Time `json:"created_at"`
}
