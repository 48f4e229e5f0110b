package chat

import (
	"context"

	"github.com/google/uuid"

	models "gatorkeys/internal/chat/model"
)

// MessageRepository is the store adapter for messages. Two variants
// exist: the bun/postgres relational store and the redis document store.
// Each call is independently consistent; no cross-call transaction is
// assumed by the callers.
type MessageRepository interface {
	// Append assigns id and timestamp and stores the message unread
	Append(ctx context.Context, msg *models.Message) error

	// QueryDirected returns all messages where sender=from and receiver=to
	QueryDirected(ctx context.Context, from, to uuid.UUID) ([]models.Message, error)

	// QueryInvolving returns all messages where user is either party
	QueryInvolving(ctx context.Context, user uuid.UUID) ([]models.Message, error)

	// MarkRead flips unread messages from→to to read and reports how many
	MarkRead(ctx context.Context, from, to uuid.UUID) (int, error)

	// QueryByThread returns a thread's messages ordered oldest first
	QueryByThread(ctx context.Context, threadID uuid.UUID) ([]models.Message, error)
}

// ThreadRepository exists only on the relational store variant.
type ThreadRepository interface {
	// GetThread looks up by (listing, canonical pair)
	GetThread(ctx context.Context, listingID, userLow, userHigh uuid.UUID) (*models.Thread, error)

	// InsertThread stores a new thread; a concurrent duplicate surfaces
	// as an ALREADY_EXISTS error from the store's uniqueness constraint
	InsertThread(ctx context.Context, t *models.Thread) error

	GetThreadByID(ctx context.Context, id uuid.UUID) (*models.Thread, error)

	// ListThreadsForUser returns threads involving user, newest first
	ListThreadsForUser(ctx context.Context, user uuid.UUID) ([]models.Thread, error)
}
