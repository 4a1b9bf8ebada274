package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type pingRepository struct {
	db *sql.DB
}

func NewPingRepository(db *sql.DB) repository.PingRepository {
	return &pingRepository{db: db}
}

const pingColumns = `id, sender_id, receiver_id, status, message, expires_at, created_on, updated_on`

func (r *pingRepository) Create(ctx context.Context, p *domain.Ping) error {
	query := `INSERT INTO pings (sender_id, receiver_id, status, message, expires_at, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.SenderID, p.ReceiverID, p.Status, p.Message, p.ExpiresAt, time.Now(), time.Now()).Scan(&p.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("ping from user %d to user %d already exists", p.SenderID, p.ReceiverID)
	}
	return err
}

func (r *pingRepository) GetByID(ctx context.Context, id int32) (*domain.Ping, error) {
	p := &domain.Ping{}
	query := `SELECT ` + pingColumns + ` FROM pings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Status, &p.Message, &p.ExpiresAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("ping %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pingRepository) GetByPair(ctx context.Context, senderID, receiverID int32) (*domain.Ping, error) {
	p := &domain.Ping{}
	query := `SELECT ` + pingColumns + ` FROM pings WHERE sender_id = $1 AND receiver_id = $2`
	err := r.db.QueryRowContext(ctx, query, senderID, receiverID).Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Status, &p.Message, &p.ExpiresAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no ping from user %d to user %d", senderID, receiverID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Reopen revives the pair's terminal ping as a fresh PENDING request.
// The unique (sender_id, receiver_id) index keeps one row per ordered
// pair, so a re-send after expiry or rejection reuses the row instead
// of inserting a duplicate that the index would refuse.
func (r *pingRepository) Reopen(ctx context.Context, senderID, receiverID int32, message string, expiresAt time.Time) (*domain.Ping, error) {
	p := &domain.Ping{}
	query := `UPDATE pings SET status=$1, message=$2, expires_at=$3, updated_on=$4
	          WHERE sender_id=$5 AND receiver_id=$6 AND status IN ($7, $8)
	          RETURNING ` + pingColumns
	err := r.db.QueryRowContext(ctx, query, domain.PingStatusPending, message, expiresAt, time.Now(), senderID, receiverID, domain.PingStatusExpired, domain.PingStatusRejected).
		Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Status, &p.Message, &p.ExpiresAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no reopenable ping from user %d to user %d", senderID, receiverID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pingRepository) SetStatus(ctx context.Context, id int32, from, to domain.PingStatus) (bool, error) {
	query := `UPDATE pings SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *pingRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	query := `UPDATE pings SET status=$1, updated_on=$2 WHERE status=$3 AND expires_at < $4 RETURNING id`
	return collectExpiredIDs(r.db.QueryContext(ctx, query, domain.PingStatusExpired, time.Now(), domain.PingStatusPending, now))
}
