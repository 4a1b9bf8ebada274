package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type memberItemRequestRepository struct {
	db *sql.DB
}

func NewMemberItemRequestRepository(db *sql.DB) repository.MemberItemRequestRepository {
	return &memberItemRequestRepository{db: db}
}

const memberItemRequestColumns = `id, item_id, member_id, status, note, requested_at, expires_at, updated_on`

func (r *memberItemRequestRepository) Create(ctx context.Context, req *domain.MemberItemRequest) error {
	query := `INSERT INTO member_item_requests (item_id, member_id, status, note, requested_at, expires_at, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.ItemID, req.MemberID, req.Status, req.Note, req.RequestedAt, req.ExpiresAt, time.Now()).Scan(&req.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("member %d already requested item %d", req.MemberID, req.ItemID)
	}
	return err
}

func (r *memberItemRequestRepository) GetByID(ctx context.Context, id int32) (*domain.MemberItemRequest, error) {
	req := &domain.MemberItemRequest{}
	query := `SELECT ` + memberItemRequestColumns + ` FROM member_item_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.ItemID, &req.MemberID, &req.Status, &req.Note, &req.RequestedAt, &req.ExpiresAt, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("member item request %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *memberItemRequestRepository) CountActiveByMember(ctx context.Context, memberID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM member_item_requests WHERE member_id = $1 AND status IN ($2, $3)`
	err := r.db.QueryRowContext(ctx, query, memberID, domain.MemberItemRequestStatusRequested, domain.MemberItemRequestStatusReceived).Scan(&count)
	return count, err
}

func (r *memberItemRequestRepository) ListActiveByItem(ctx context.Context, itemID int32) ([]domain.MemberItemRequest, error) {
	query := `SELECT ` + memberItemRequestColumns + ` FROM member_item_requests WHERE item_id = $1 AND status IN ($2, $3) ORDER BY requested_at`
	rows, err := r.db.QueryContext(ctx, query, itemID, domain.MemberItemRequestStatusRequested, domain.MemberItemRequestStatusReceived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MemberItemRequest
	for rows.Next() {
		var req domain.MemberItemRequest
		if err := rows.Scan(&req.ID, &req.ItemID, &req.MemberID, &req.Status, &req.Note, &req.RequestedAt, &req.ExpiresAt, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *memberItemRequestRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.MemberItemRequestStatus) (bool, error) {
	query := `UPDATE member_item_requests SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ExpireOverdue flips overdue REQUESTED rows to EXPIRED in one pass.
// Only non-terminal rows match, so re-running is a no-op.
func (r *memberItemRequestRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	query := `UPDATE member_item_requests SET status=$1, updated_on=$2 WHERE status=$3 AND expires_at < $4 RETURNING id`
	return collectExpiredIDs(r.db.QueryContext(ctx, query, domain.MemberItemRequestStatusExpired, time.Now(), domain.MemberItemRequestStatusRequested, now))
}

// collectExpiredIDs drains a RETURNING id result set for the sweeps.
func collectExpiredIDs(rows *sql.Rows, err error) ([]int32, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
