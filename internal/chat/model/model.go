package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a directed unit between two users. Sender, receiver, body
// and timestamp are immutable after insert; only Read flips, false→true.
type Message struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	SenderID   uuid.UUID `bun:",notnull,type:uuid"`
	ReceiverID uuid.UUID `bun:",notnull,type:uuid"`

	Body string `bun:",notnull"`

	Read bool `bun:"is_read,notnull,default:false"`

	// ThreadID is set only by the relational store variant
	ThreadID *uuid.UUID `bun:",nullzero,type:uuid"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Thread is the canonical identity for a listing-scoped conversation.
// Participants are stored low/high by uuid string order so (A,B) and
// (B,A) collapse to one row.
type Thread struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	ListingID uuid.UUID `bun:",notnull,type:uuid"`

	UserLowID  uuid.UUID `bun:",notnull,type:uuid"`
	UserHighID uuid.UUID `bun:",notnull,type:uuid"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`

	// Unique index in migration:
	// CREATE UNIQUE INDEX idx_thread_pair ON threads (listing_id, user_low_id, user_high_id);
}

// Participant reports whether u is one of the thread's two parties.
func (t *Thread) Participant(u uuid.UUID) bool {
	return u == t.UserLowID || u == t.UserHighID
}

// Other returns the counterparty of u in the thread.
func (t *Thread) Other(u uuid.UUID) uuid.UUID {
	if u == t.UserLowID {
		return t.UserHighID
	}
	return t.UserLowID
}

// CanonicalPair orders two ids by their string form, low first.
func CanonicalPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if x.String() > y.String() {
		return y, x
	}
	return x, y
}
