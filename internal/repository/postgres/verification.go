package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type verificationRepository struct {
	db *sql.DB
}

func NewVerificationRepository(db *sql.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

const verificationRequestColumns = `id, user_id, church_id, status, notes, created_on, updated_on`

func (r *verificationRepository) CreateRequest(ctx context.Context, req *domain.VerificationRequest) error {
	query := `INSERT INTO verification_requests (user_id, church_id, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.UserID, req.ChurchID, req.Status, req.Notes, time.Now(), time.Now()).Scan(&req.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("user %d already has a join request for church %d", req.UserID, req.ChurchID)
	}
	return err
}

func (r *verificationRepository) GetRequestByID(ctx context.Context, id int32) (*domain.VerificationRequest, error) {
	req := &domain.VerificationRequest{}
	query := `SELECT ` + verificationRequestColumns + ` FROM verification_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserID, &req.ChurchID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("verification request %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *verificationRepository) GetPendingRequest(ctx context.Context, userID, churchID int32) (*domain.VerificationRequest, error) {
	req := &domain.VerificationRequest{}
	query := `SELECT ` + verificationRequestColumns + ` FROM verification_requests WHERE user_id = $1 AND church_id = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, userID, churchID, domain.VerificationRequestStatusPending).Scan(&req.ID, &req.UserID, &req.ChurchID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no pending join request for user %d at church %d", userID, churchID)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListPendingForVerifier returns the church's open requests the
// verifier has not vouched for yet, oldest first. No assignment state
// is stored; the queue is recomputed on every fetch.
func (r *verificationRepository) ListPendingForVerifier(ctx context.Context, churchID, verifierID int32) ([]domain.VerificationRequest, error) {
	query := `SELECT ` + verificationRequestColumns + ` FROM verification_requests vr
	          WHERE vr.church_id = $1 AND vr.status = $2
	            AND vr.user_id <> $3
	            AND NOT EXISTS (
	                SELECT 1 FROM member_verifications mv
	                WHERE mv.request_id = vr.id AND mv.verifier_id = $3
	            )
	          ORDER BY vr.created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, churchID, domain.VerificationRequestStatusPending, verifierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.VerificationRequest
	for rows.Next() {
		var req domain.VerificationRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.ChurchID, &req.Status, &req.Notes, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *verificationRepository) SetRequestStatus(ctx context.Context, id int32, from, to domain.VerificationRequestStatus) (bool, error) {
	query := `UPDATE verification_requests SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CreateVouch records one verifier's endorsement. The unique index on
// (request_id, verifier_id) keeps the vouch count a distinct-voter
// count even under concurrent duplicates.
func (r *verificationRepository) CreateVouch(ctx context.Context, v *domain.MemberVerification) error {
	query := `INSERT INTO member_verifications (request_id, verifier_id, created_on) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, v.RequestID, v.VerifierID, time.Now()).Scan(&v.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("verifier %d already vouched for request %d", v.VerifierID, v.RequestID)
	}
	return err
}

func (r *verificationRepository) CountVouches(ctx context.Context, requestID int32) (int32, error) {
	var count int32
	query := `SELECT count(DISTINCT verifier_id) FROM member_verifications WHERE request_id = $1`
	err := r.db.QueryRowContext(ctx, query, requestID).Scan(&count)
	return count, err
}

func (r *verificationRepository) ListVerifierNames(ctx context.Context, requestID int32) ([]string, error) {
	query := `SELECT u.name FROM member_verifications mv
	          JOIN users u ON u.id = mv.verifier_id
	          WHERE mv.request_id = $1 ORDER BY mv.created_on`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
