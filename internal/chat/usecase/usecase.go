package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gatorkeys/internal/chat"
	models "gatorkeys/internal/chat/model"
	"gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

const maxBodyLength = 4000

type ChatUsecase struct {
	messages chat.MessageRepository
	threads  chat.ThreadRepository // nil on the document store variant
	logger   logger.Logger
}

func NewChatUsecase(messages chat.MessageRepository, threads chat.ThreadRepository, logger logger.Logger) *ChatUsecase {
	return &ChatUsecase{messages: messages, threads: threads, logger: logger}
}

// storeErr surfaces domain errors as-is and classifies everything else
// as a store failure.
func storeErr(err error) error {
	if errors.CodeOf(err) != errors.CodeUnknown {
		return err
	}
	return errors.ErrStoreUnavailable(err)
}

func (uc *ChatUsecase) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (*chat.MessageDTO, error) {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return nil, errors.ErrEmptyBody
	}
	if len(body) > maxBodyLength {
		return nil, errors.ErrBodyTooLong
	}
	if cmd.SenderID == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}

	receiver := cmd.ReceiverID
	if cmd.ThreadID != nil {
		if uc.threads == nil {
			return nil, errors.ErrThreadsUnsupported
		}
		t, err := uc.threads.GetThreadByID(ctx, *cmd.ThreadID)
		if err != nil {
			return nil, storeErr(err)
		}
		if !t.Participant(cmd.SenderID) {
			return nil, errors.ErrNotParticipant
		}
		receiver = t.Other(cmd.SenderID)
	}

	if receiver == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}
	if cmd.SenderID == receiver {
		return nil, errors.ErrSelfMessage
	}

	msg := &models.Message{
		SenderID:   cmd.SenderID,
		ReceiverID: receiver,
		Body:       body,
		ThreadID:   cmd.ThreadID,
	}
	if err := uc.messages.Append(ctx, msg); err != nil {
		uc.logger.Error("failed to append message", "sender", cmd.SenderID, "err", err)
		return nil, storeErr(err)
	}

	dto := toDTO(*msg)
	return &dto, nil
}

// GetConversation merges the two directional streams between a and b
// into one chronological sequence. The two reads are not transactional:
// a message written between them may appear or be missed. Equal
// timestamps keep store return order (stable sort), which callers must
// treat as unspecified.
func (uc *ChatUsecase) GetConversation(ctx context.Context, a, b uuid.UUID) ([]chat.MessageDTO, error) {
	if a == uuid.Nil || b == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}

	sent, err := uc.messages.QueryDirected(ctx, a, b)
	if err != nil {
		return nil, storeErr(err)
	}
	received, err := uc.messages.QueryDirected(ctx, b, a)
	if err != nil {
		return nil, storeErr(err)
	}

	merged := make([]models.Message, 0, len(sent)+len(received))
	merged = append(merged, sent...)
	merged = append(merged, received...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})

	out := make([]chat.MessageDTO, 0, len(merged))
	for _, m := range merged {
		out = append(out, toDTO(m))
	}
	return out, nil
}

// ListConversations derives one summary per correspondent from the full
// message set involving user. Summaries are recomputed on every call
// and never cached. Among equal timestamps the first message in scan
// order wins.
func (uc *ChatUsecase) ListConversations(ctx context.Context, user uuid.UUID) ([]chat.ConversationSummary, error) {
	if user == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}

	msgs, err := uc.messages.QueryInvolving(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}

	byOther := make(map[uuid.UUID]*chat.ConversationSummary)
	var order []uuid.UUID
	for _, m := range msgs {
		other := m.SenderID
		if other == user {
			other = m.ReceiverID
		}
		if other == user {
			// self-messages are rejected at send; never surface one
			continue
		}

		s, ok := byOther[other]
		if !ok {
			s = &chat.ConversationSummary{OtherUserID: other}
			byOther[other] = s
			order = append(order, other)
		}
		if s.LastMessageAt.IsZero() || m.CreatedAt.After(s.LastMessageAt) {
			s.LastMessage = m.Body
			s.LastMessageAt = m.CreatedAt
		}
		if m.SenderID == other && m.ReceiverID == user && !m.Read {
			s.UnreadCount++
		}
	}

	out := make([]chat.ConversationSummary, 0, len(order))
	for _, other := range order {
		out = append(out, *byOther[other])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (uc *ChatUsecase) MarkConversationRead(ctx context.Context, user, other uuid.UUID) (int, error) {
	if user == uuid.Nil || other == uuid.Nil {
		return 0, errors.ErrEmptyParticipant
	}

	count, err := uc.messages.MarkRead(ctx, other, user)
	if err != nil {
		uc.logger.Error("failed to mark conversation read", "user", user, "other", other, "err", err)
		return 0, storeErr(err)
	}
	return count, nil
}

// ResolveThread maps (listing, unordered pair) to its canonical thread,
// inserting on first contact. Two concurrent resolves may both attempt
// the insert; the store's uniqueness constraint rejects the loser, which
// then re-reads the winner's row.
func (uc *ChatUsecase) ResolveThread(ctx context.Context, listingID, x, y uuid.UUID) (*chat.ThreadDTO, error) {
	if uc.threads == nil {
		return nil, errors.ErrThreadsUnsupported
	}
	if x == uuid.Nil || y == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}
	if x == y {
		return nil, errors.ErrSelfThread
	}

	low, high := models.CanonicalPair(x, y)

	t, err := uc.threads.GetThread(ctx, listingID, low, high)
	if err == nil {
		return threadDTO(t), nil
	}
	if errors.CodeOf(err) != errors.CodeNotFound {
		return nil, storeErr(err)
	}

	t = &models.Thread{ListingID: listingID, UserLowID: low, UserHighID: high}
	err = uc.threads.InsertThread(ctx, t)
	if err == nil {
		return threadDTO(t), nil
	}
	if errors.CodeOf(err) != errors.CodeAlreadyExists {
		return nil, storeErr(err)
	}

	// lost the creation race; the winner's row must exist now
	t, err = uc.threads.GetThread(ctx, listingID, low, high)
	if err != nil {
		return nil, storeErr(err)
	}
	return threadDTO(t), nil
}

func (uc *ChatUsecase) ListThreads(ctx context.Context, user uuid.UUID) ([]chat.ThreadDTO, error) {
	if uc.threads == nil {
		return nil, errors.ErrThreadsUnsupported
	}
	if user == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}

	threads, err := uc.threads.ListThreadsForUser(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]chat.ThreadDTO, 0, len(threads))
	for i := range threads {
		out = append(out, *threadDTO(&threads[i]))
	}
	return out, nil
}

func (uc *ChatUsecase) ListThreadMessages(ctx context.Context, threadID, requester uuid.UUID) ([]chat.MessageDTO, error) {
	if uc.threads == nil {
		return nil, errors.ErrThreadsUnsupported
	}
	if requester == uuid.Nil {
		return nil, errors.ErrEmptyParticipant
	}

	t, err := uc.threads.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !t.Participant(requester) {
		return nil, errors.ErrNotParticipant
	}

	msgs, err := uc.messages.QueryByThread(ctx, threadID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]chat.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toDTO(m))
	}
	return out, nil
}

func toDTO(m models.Message) chat.MessageDTO {
	return chat.MessageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		Read:       m.Read,
		ThreadID:   m.ThreadID,
		CreatedAt:  m.CreatedAt,
	}
}

func threadDTO(t *models.Thread) *chat.ThreadDTO {
	return &chat.ThreadDTO{
		ID:         t.ID,
		ListingID:  t.ListingID,
		UserLowID:  t.UserLowID,
		UserHighID: t.UserHighID,
		CreatedAt:  t.CreatedAt,
	}
}
