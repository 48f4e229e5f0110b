package chat

import (
	"context"

	"github.com/google/uuid"
)

type ChatUsecase interface {
	// SendMessage stores a directed message. With ThreadID set the
	// receiver is derived from the thread and the caller must be a
	// participant.
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*MessageDTO, error)

	// GetConversation merges both directions between a and b, oldest
	// first. Equal timestamps keep store return order; callers must not
	// rely on any particular order among ties.
	GetConversation(ctx context.Context, a, b uuid.UUID) ([]MessageDTO, error)

	// ListConversations derives one summary per correspondent of user,
	// most recent conversation first.
	ListConversations(ctx context.Context, user uuid.UUID) ([]ConversationSummary, error)

	// MarkConversationRead flips unread messages other→user to read and
	// returns the count mutated. Idempotent.
	MarkConversationRead(ctx context.Context, user, other uuid.UUID) (int, error)

	// ResolveThread maps (listing, unordered pair) to its single thread,
	// creating it on first contact.
	ResolveThread(ctx context.Context, listingID, x, y uuid.UUID) (*ThreadDTO, error)

	ListThreads(ctx context.Context, user uuid.UUID) ([]ThreadDTO, error)

	// ListThreadMessages fails with PERMISSION_DENIED when requester is
	// not a participant.
	ListThreadMessages(ctx context.Context, threadID, requester uuid.UUID) ([]MessageDTO, error)
}
