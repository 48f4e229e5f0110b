package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	models "gatorkeys/internal/chat/model"
	appErrors "gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

// ChatRepository is the relational store variant: messages and threads
// live in postgres behind bun.
type ChatRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewChatRepository(db *bun.DB, logger logger.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ChatRepository) Append(ctx context.Context, msg *models.Message) error {
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.Append.Insert: ")
	}
	return nil
}

func (r *ChatRepository) QueryDirected(ctx context.Context, from, to uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.NewSelect().Model(&msgs).
		Where("sender_id = ? AND receiver_id = ?", from, to).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.QueryDirected.Scan: ")
	}
	return msgs, nil
}

func (r *ChatRepository) QueryInvolving(ctx context.Context, user uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.NewSelect().Model(&msgs).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("sender_id = ?", user).WhereOr("receiver_id = ?", user)
		}).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.QueryInvolving.Scan: ")
	}
	return msgs, nil
}

func (r *ChatRepository) MarkRead(ctx context.Context, from, to uuid.UUID) (int, error) {
	res, err := r.db.NewUpdate().Model((*models.Message)(nil)).
		Set("is_read = ?", true).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", from, to, false).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "chatRepo.MarkRead.Update: ")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "chatRepo.MarkRead.RowsAffected: ")
	}
	return int(n), nil
}

func (r *ChatRepository) QueryByThread(ctx context.Context, threadID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.NewSelect().Model(&msgs).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.QueryByThread.Scan: ")
	}
	return msgs, nil
}

func (r *ChatRepository) GetThread(ctx context.Context, listingID, userLow, userHigh uuid.UUID) (*models.Thread, error) {
	t := new(models.Thread)
	err := r.db.NewSelect().Model(t).
		Where("listing_id = ? AND user_low_id = ? AND user_high_id = ?", listingID, userLow, userHigh).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrThreadNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetThread.Scan: ")
	}
	return t, nil
}

func (r *ChatRepository) InsertThread(ctx context.Context, t *models.Thread) error {
	_, err := r.db.NewInsert().Model(t).Returning("*").Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return appErrors.AlreadyExists("thread already exists for this pair")
		}
		return errors.Wrap(err, "chatRepo.InsertThread.Insert: ")
	}
	return nil
}

func (r *ChatRepository) GetThreadByID(ctx context.Context, id uuid.UUID) (*models.Thread, error) {
	t := new(models.Thread)
	err := r.db.NewSelect().Model(t).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrThreadNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetThreadByID.Scan: ")
	}
	return t, nil
}

func (r *ChatRepository) ListThreadsForUser(ctx context.Context, user uuid.UUID) ([]models.Thread, error) {
	var threads []models.Thread
	err := r.db.NewSelect().Model(&threads).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("user_low_id = ?", user).WhereOr("user_high_id = ?", user)
		}).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListThreadsForUser.Scan: ")
	}
	return threads, nil
}
