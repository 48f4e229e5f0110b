package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatorkeys/internal/chat"
	"gatorkeys/internal/chat/mocks"
	models "gatorkeys/internal/chat/model"
	appErrors "gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

var (
	alice = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	bob   = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	carol = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
)

func msg(from, to uuid.UUID, body string, at time.Time, read bool) models.Message {
	return models.Message{
		ID:         uuid.New(),
		SenderID:   from,
		ReceiverID: to,
		Body:       body,
		Read:       read,
		CreatedAt:  at,
	}
}

func newChatUC(t *testing.T) (*ChatUsecase, *mocks.MockMessageRepository, *mocks.MockThreadRepository) {
	ctrl := gomock.NewController(t)
	msgs := mocks.NewMockMessageRepository(ctrl)
	threads := mocks.NewMockThreadRepository(ctrl)
	return NewChatUsecase(msgs, threads, logger.Logger{}), msgs, threads
}

func TestChatUsecase_SendMessage(t *testing.T) {
	t.Run("stores a trimmed directed message", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		msgs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *models.Message) error {
				m.ID = uuid.New()
				m.CreatedAt = time.Now().UTC()
				return nil
			})

		dto, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID:   alice,
			ReceiverID: bob,
			Body:       "  hi there  ",
		})
		require.NoError(t, err)
		assert.Equal(t, alice, dto.SenderID)
		assert.Equal(t, bob, dto.ReceiverID)
		assert.Equal(t, "hi there", dto.Body)
		assert.False(t, dto.Read)
	})

	t.Run("rejects self-addressed message without touching the store", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID:   alice,
			ReceiverID: alice,
			Body:       "hello me",
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID:   alice,
			ReceiverID: bob,
			Body:       "   ",
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("rejects missing receiver", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID: alice,
			Body:     "hi",
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("thread send derives the receiver and checks membership", func(t *testing.T) {
		uc, msgs, threads := newChatUC(t)

		threadID := uuid.New()
		low, high := models.CanonicalPair(alice, bob)
		threads.EXPECT().GetThreadByID(gomock.Any(), threadID).Return(&models.Thread{
			ID: threadID, UserLowID: low, UserHighID: high,
		}, nil)
		msgs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *models.Message) error {
				m.CreatedAt = time.Now().UTC()
				return nil
			})

		dto, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID: alice,
			ThreadID: &threadID,
			Body:     "still available?",
		})
		require.NoError(t, err)
		assert.Equal(t, bob, dto.ReceiverID)
		require.NotNil(t, dto.ThreadID)
		assert.Equal(t, threadID, *dto.ThreadID)
	})

	t.Run("thread send from an outsider is forbidden", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		threadID := uuid.New()
		low, high := models.CanonicalPair(alice, bob)
		threads.EXPECT().GetThreadByID(gomock.Any(), threadID).Return(&models.Thread{
			ID: threadID, UserLowID: low, UserHighID: high,
		}, nil)

		_, err := uc.SendMessage(context.Background(), chat.SendMessageCommand{
			SenderID: carol,
			ThreadID: &threadID,
			Body:     "let me in",
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.CodePermissionDenied, appErrors.CodeOf(err))
	})
}

func TestChatUsecase_GetConversation(t *testing.T) {
	base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("merges both directions oldest first", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		sent := []models.Message{
			msg(alice, bob, "hi", base, false),
			msg(alice, bob, "are you there?", base.Add(3*time.Minute), false),
		}
		received := []models.Message{
			msg(bob, alice, "hey", base.Add(1*time.Minute), false),
			msg(bob, alice, "yes", base.Add(4*time.Minute), false),
		}
		msgs.EXPECT().QueryDirected(gomock.Any(), alice, bob).Return(sent, nil)
		msgs.EXPECT().QueryDirected(gomock.Any(), bob, alice).Return(received, nil)

		out, err := uc.GetConversation(context.Background(), alice, bob)
		require.NoError(t, err)
		require.Len(t, out, 4)

		for i := 1; i < len(out); i++ {
			assert.False(t, out[i].CreatedAt.Before(out[i-1].CreatedAt),
				"messages must be in non-decreasing timestamp order")
		}
		bodies := []string{out[0].Body, out[1].Body, out[2].Body, out[3].Body}
		assert.Equal(t, []string{"hi", "hey", "are you there?", "yes"}, bodies)
	})

	t.Run("equal timestamps keep first-stream order", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		sent := []models.Message{msg(alice, bob, "first", base, false)}
		received := []models.Message{msg(bob, alice, "second", base, false)}
		msgs.EXPECT().QueryDirected(gomock.Any(), alice, bob).Return(sent, nil)
		msgs.EXPECT().QueryDirected(gomock.Any(), bob, alice).Return(received, nil)

		out, err := uc.GetConversation(context.Background(), alice, bob)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "first", out[0].Body)
		assert.Equal(t, "second", out[1].Body)
	})

	t.Run("requires both identities", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.GetConversation(context.Background(), alice, uuid.Nil)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("store failure aborts without partial result", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		msgs.EXPECT().QueryDirected(gomock.Any(), alice, bob).
			Return([]models.Message{msg(alice, bob, "hi", base, false)}, nil)
		msgs.EXPECT().QueryDirected(gomock.Any(), bob, alice).
			Return(nil, assert.AnError)

		out, err := uc.GetConversation(context.Background(), alice, bob)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.Equal(t, appErrors.CodeUnavailable, appErrors.CodeOf(err))
	})
}

func TestChatUsecase_ListConversations(t *testing.T) {
	base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("one summary per correspondent, most recent first", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		involving := []models.Message{
			msg(alice, bob, "hi", base, true),
			msg(bob, alice, "hey", base.Add(1*time.Minute), false),
			msg(carol, alice, "is utilities included?", base.Add(5*time.Minute), false),
			msg(alice, carol, "yes, water and trash", base.Add(6*time.Minute), true),
			msg(carol, alice, "thanks!", base.Add(7*time.Minute), false),
		}
		msgs.EXPECT().QueryInvolving(gomock.Any(), alice).Return(involving, nil)

		out, err := uc.ListConversations(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, carol, out[0].OtherUserID)
		assert.Equal(t, "thanks!", out[0].LastMessage)
		assert.Equal(t, 2, out[0].UnreadCount)

		assert.Equal(t, bob, out[1].OtherUserID)
		assert.Equal(t, "hey", out[1].LastMessage)
		assert.Equal(t, 1, out[1].UnreadCount)
	})

	t.Run("unread counts only messages addressed to the user", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		involving := []models.Message{
			// alice's own unread messages at bob must not count
			msg(alice, bob, "ping", base, false),
			msg(bob, alice, "pong", base.Add(time.Minute), false),
		}
		msgs.EXPECT().QueryInvolving(gomock.Any(), alice).Return(involving, nil)

		out, err := uc.ListConversations(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 1, out[0].UnreadCount)
	})

	t.Run("user with no messages gets an empty list", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		msgs.EXPECT().QueryInvolving(gomock.Any(), alice).Return(nil, nil)

		out, err := uc.ListConversations(context.Background(), alice)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("read state flip is reflected in the summary", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		unread := []models.Message{
			msg(alice, bob, "hi", base, true),
			msg(bob, alice, "hey", base.Add(time.Minute), false),
		}
		read := []models.Message{
			msg(alice, bob, "hi", base, true),
			msg(bob, alice, "hey", base.Add(time.Minute), true),
		}
		gomock.InOrder(
			msgs.EXPECT().QueryInvolving(gomock.Any(), alice).Return(unread, nil),
			msgs.EXPECT().MarkRead(gomock.Any(), bob, alice).Return(1, nil),
			msgs.EXPECT().MarkRead(gomock.Any(), bob, alice).Return(0, nil),
			msgs.EXPECT().QueryInvolving(gomock.Any(), alice).Return(read, nil),
		)

		before, err := uc.ListConversations(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, before, 1)
		assert.Equal(t, "hey", before[0].LastMessage)
		assert.Equal(t, 1, before[0].UnreadCount)

		n, err := uc.MarkConversationRead(context.Background(), alice, bob)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		// idempotent: a repeat flips nothing
		n, err = uc.MarkConversationRead(context.Background(), alice, bob)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		after, err := uc.ListConversations(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, 0, after[0].UnreadCount)
	})
}

func TestChatUsecase_MarkConversationRead(t *testing.T) {
	t.Run("requires both identities", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.MarkConversationRead(context.Background(), uuid.Nil, bob)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("only flips the other-to-user direction", func(t *testing.T) {
		uc, msgs, _ := newChatUC(t)

		// the repository is asked for sender=bob, receiver=alice
		msgs.EXPECT().MarkRead(gomock.Any(), bob, alice).Return(3, nil)

		n, err := uc.MarkConversationRead(context.Background(), alice, bob)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestChatUsecase_ResolveThread(t *testing.T) {
	listingID := uuid.New()

	t.Run("returns the existing thread for either argument order", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		low, high := models.CanonicalPair(alice, bob)
		existing := &models.Thread{ID: uuid.New(), ListingID: listingID, UserLowID: low, UserHighID: high}
		threads.EXPECT().GetThread(gomock.Any(), listingID, low, high).Return(existing, nil).Times(2)

		a, err := uc.ResolveThread(context.Background(), listingID, alice, bob)
		require.NoError(t, err)
		b, err := uc.ResolveThread(context.Background(), listingID, bob, alice)
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
	})

	t.Run("creates on first contact", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		low, high := models.CanonicalPair(alice, bob)
		threads.EXPECT().GetThread(gomock.Any(), listingID, low, high).Return(nil, appErrors.ErrThreadNotFound)
		threads.EXPECT().InsertThread(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, th *models.Thread) error {
				assert.Equal(t, low, th.UserLowID)
				assert.Equal(t, high, th.UserHighID)
				th.ID = uuid.New()
				th.CreatedAt = time.Now().UTC()
				return nil
			})

		dto, err := uc.ResolveThread(context.Background(), listingID, bob, alice)
		require.NoError(t, err)
		assert.Equal(t, listingID, dto.ListingID)
	})

	t.Run("lost insert race falls back to the winner's row", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		low, high := models.CanonicalPair(alice, bob)
		winner := &models.Thread{ID: uuid.New(), ListingID: listingID, UserLowID: low, UserHighID: high}
		gomock.InOrder(
			threads.EXPECT().GetThread(gomock.Any(), listingID, low, high).Return(nil, appErrors.ErrThreadNotFound),
			threads.EXPECT().InsertThread(gomock.Any(), gomock.Any()).Return(appErrors.AlreadyExists("thread already exists for this pair")),
			threads.EXPECT().GetThread(gomock.Any(), listingID, low, high).Return(winner, nil),
		)

		dto, err := uc.ResolveThread(context.Background(), listingID, alice, bob)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, dto.ID)
	})

	t.Run("rejects a self-thread", func(t *testing.T) {
		uc, _, _ := newChatUC(t)

		_, err := uc.ResolveThread(context.Background(), listingID, alice, alice)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("unsupported on the document store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		msgs := mocks.NewMockMessageRepository(ctrl)
		uc := NewChatUsecase(msgs, nil, logger.Logger{})

		_, err := uc.ResolveThread(context.Background(), listingID, alice, bob)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeFailedPrecondition, appErrors.CodeOf(err))
	})
}

func TestChatUsecase_ListThreadMessages(t *testing.T) {
	threadID := uuid.New()
	low, high := models.CanonicalPair(alice, bob)

	t.Run("participant sees messages oldest first", func(t *testing.T) {
		uc, msgs, threads := newChatUC(t)

		base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
		threads.EXPECT().GetThreadByID(gomock.Any(), threadID).Return(&models.Thread{
			ID: threadID, UserLowID: low, UserHighID: high,
		}, nil)
		msgs.EXPECT().QueryByThread(gomock.Any(), threadID).Return([]models.Message{
			msg(alice, bob, "hi", base, false),
			msg(bob, alice, "hey", base.Add(time.Minute), false),
		}, nil)

		out, err := uc.ListThreadMessages(context.Background(), threadID, alice)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "hi", out[0].Body)
	})

	t.Run("non-participant is forbidden, not hidden", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		threads.EXPECT().GetThreadByID(gomock.Any(), threadID).Return(&models.Thread{
			ID: threadID, UserLowID: low, UserHighID: high,
		}, nil)

		_, err := uc.ListThreadMessages(context.Background(), threadID, carol)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodePermissionDenied, appErrors.CodeOf(err))
	})

	t.Run("unknown thread is not found", func(t *testing.T) {
		uc, _, threads := newChatUC(t)

		threads.EXPECT().GetThreadByID(gomock.Any(), threadID).Return(nil, appErrors.ErrThreadNotFound)

		_, err := uc.ListThreadMessages(context.Background(), threadID, alice)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	})
}
