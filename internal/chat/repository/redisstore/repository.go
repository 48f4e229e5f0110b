package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	models "gatorkeys/internal/chat/model"
	appErrors "gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

// MessageRepository is the document store variant. Each message is a
// hash keyed by id; directed-pair and per-user sorted sets index the ids
// by send time. Threads do not exist in this variant.
type MessageRepository struct {
	rdb    *redis.Client
	logger *logger.Logger
}

func NewMessageRepository(rdb *redis.Client, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		rdb:    rdb,
		logger: &logger,
	}
}

func msgKey(id uuid.UUID) string        { return "msg:" + id.String() }
func pairKey(from, to uuid.UUID) string { return fmt.Sprintf("dm:%s:%s", from, to) }
func inboxKey(user uuid.UUID) string    { return "inbox:" + user.String() }

func (r *MessageRepository) Append(ctx context.Context, msg *models.Message) error {
	msg.ID = uuid.New()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	fields := map[string]any{
		"sender":     msg.SenderID.String(),
		"receiver":   msg.ReceiverID.String(),
		"body":       msg.Body,
		"read":       "0",
		"created_at": msg.CreatedAt.Format(time.RFC3339Nano),
	}
	score := float64(msg.CreatedAt.UnixNano())
	member := redis.Z{Score: score, Member: msg.ID.String()}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, msgKey(msg.ID), fields)
	pipe.ZAdd(ctx, pairKey(msg.SenderID, msg.ReceiverID), member)
	pipe.ZAdd(ctx, inboxKey(msg.SenderID), member)
	pipe.ZAdd(ctx, inboxKey(msg.ReceiverID), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "chatRedis.Append.Exec: ")
	}
	return nil
}

func (r *MessageRepository) QueryDirected(ctx context.Context, from, to uuid.UUID) ([]models.Message, error) {
	return r.collect(ctx, pairKey(from, to))
}

func (r *MessageRepository) QueryInvolving(ctx context.Context, user uuid.UUID) ([]models.Message, error) {
	return r.collect(ctx, inboxKey(user))
}

func (r *MessageRepository) MarkRead(ctx context.Context, from, to uuid.UUID) (int, error) {
	ids, err := r.rdb.ZRange(ctx, pairKey(from, to), 0, -1).Result()
	if err != nil {
		return 0, errors.Wrap(err, "chatRedis.MarkRead.ZRange: ")
	}

	count := 0
	for _, id := range ids {
		read, err := r.rdb.HGet(ctx, "msg:"+id, "read").Result()
		if err != nil {
			return count, errors.Wrap(err, "chatRedis.MarkRead.HGet: ")
		}
		if read == "1" {
			continue
		}
		if err := r.rdb.HSet(ctx, "msg:"+id, "read", "1").Err(); err != nil {
			return count, errors.Wrap(err, "chatRedis.MarkRead.HSet: ")
		}
		count++
	}
	return count, nil
}

func (r *MessageRepository) QueryByThread(ctx context.Context, threadID uuid.UUID) ([]models.Message, error) {
	return nil, appErrors.ErrThreadsUnsupported
}

// collect loads the messages behind an index, oldest first.
func (r *MessageRepository) collect(ctx context.Context, key string) ([]models.Message, error) {
	ids, err := r.rdb.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "chatRedis.collect.ZRange: ")
	}

	msgs := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		fields, err := r.rdb.HGetAll(ctx, "msg:"+id).Result()
		if err != nil {
			return nil, errors.Wrap(err, "chatRedis.collect.HGetAll: ")
		}
		if len(fields) == 0 {
			continue
		}
		msg, err := parseMessage(id, fields)
		if err != nil {
			r.logger.Warn("skipping malformed message document", "id", id, "err", err)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func parseMessage(id string, fields map[string]string) (models.Message, error) {
	var msg models.Message
	msgID, err := uuid.Parse(id)
	if err != nil {
		return msg, errors.Wrap(err, "parse id")
	}
	sender, err := uuid.Parse(fields["sender"])
	if err != nil {
		return msg, errors.Wrap(err, "parse sender")
	}
	receiver, err := uuid.Parse(fields["receiver"])
	if err != nil {
		return msg, errors.Wrap(err, "parse receiver")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return msg, errors.Wrap(err, "parse created_at")
	}

	msg.ID = msgID
	msg.SenderID = sender
	msg.ReceiverID = receiver
	msg.Body = fields["body"]
	msg.Read = fields["read"] == "1"
	msg.CreatedAt = createdAt
	return msg, nil
}
