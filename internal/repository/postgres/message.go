package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, church_id, author_id, type, title, body, status, moderation_status, scheduled_for, published_at, expires_at, created_on, updated_on`

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (church_id, author_id, type, title, body, status, moderation_status, scheduled_for, published_at, expires_at, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.ChurchID, m.AuthorID, m.Type, m.Title, m.Body, m.Status, m.ModerationStatus, m.ScheduledFor, m.PublishedAt, m.ExpiresAt, time.Now(), time.Now()).Scan(&m.ID)
}

func (r *messageRepository) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	m := &domain.Message{}
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.ChurchID, &m.AuthorID, &m.Type, &m.Title, &m.Body, &m.Status, &m.ModerationStatus, &m.ScheduledFor, &m.PublishedAt, &m.ExpiresAt, &m.CreatedOn, &m.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("message %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepository) Update(ctx context.Context, m *domain.Message) error {
	query := `UPDATE messages SET title=$1, body=$2, scheduled_for=$3, status=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, m.Title, m.Body, m.ScheduledFor, m.Status, time.Now(), m.ID)
	return err
}

func (r *messageRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

// CountDraftsByChurch counts messages holding a draft-quota slot.
func (r *messageRepository) CountDraftsByChurch(ctx context.Context, churchID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM messages WHERE church_id = $1 AND status IN ($2, $3)`
	err := r.db.QueryRowContext(ctx, query, churchID, domain.MessageStatusDraft, domain.MessageStatusScheduled).Scan(&count)
	return count, err
}

// Publish transitions from DRAFT or SCHEDULED only.
func (r *messageRepository) Publish(ctx context.Context, id int32, publishedAt, expiresAt time.Time) (bool, error) {
	query := `UPDATE messages SET status=$1, published_at=$2, expires_at=$3, updated_on=$4 WHERE id=$5 AND status IN ($6, $7)`
	res, err := r.db.ExecContext(ctx, query, domain.MessageStatusPublished, publishedAt, expiresAt, time.Now(), id, domain.MessageStatusDraft, domain.MessageStatusScheduled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *messageRepository) SetStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error) {
	query := `UPDATE messages SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *messageRepository) ListByChurch(ctx context.Context, churchID int32, page, pageSize int32) ([]domain.Message, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM messages WHERE church_id = $1`, churchID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE church_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, churchID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ChurchID, &m.AuthorID, &m.Type, &m.Title, &m.Body, &m.Status, &m.ModerationStatus, &m.ScheduledFor, &m.PublishedAt, &m.ExpiresAt, &m.CreatedOn, &m.UpdatedOn); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, count, rows.Err()
}

func (r *messageRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	query := `UPDATE messages SET status=$1, updated_on=$2 WHERE status=$3 AND expires_at < $4 RETURNING id`
	return collectExpiredIDs(r.db.QueryContext(ctx, query, domain.MessageStatusExpired, time.Now(), domain.MessageStatusPublished, now))
}
