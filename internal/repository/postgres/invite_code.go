package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type inviteCodeRepository struct {
	db *sql.DB
}

func NewInviteCodeRepository(db *sql.DB) repository.InviteCodeRepository {
	return &inviteCodeRepository{db: db}
}

const inviteCodeColumns = `id, owner_id, code, scans, last_scanned_at, expires_at, created_on`

func (r *inviteCodeRepository) Create(ctx context.Context, c *domain.InviteCode) error {
	query := `INSERT INTO invite_codes (owner_id, code, scans, created_on) VALUES ($1, $2, 0, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.OwnerID, c.Code, time.Now()).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("invite code %s already exists", c.Code)
	}
	return err
}

func (r *inviteCodeRepository) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	c := &domain.InviteCode{}
	query := `SELECT ` + inviteCodeColumns + ` FROM invite_codes WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&c.ID, &c.OwnerID, &c.Code, &c.Scans, &c.LastScannedAt, &c.ExpiresAt, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("invite code not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByOwner returns the owner's most recent code. Expired codes stay
// on disk for scan analytics, so the newest row is the only one that
// can still be live.
func (r *inviteCodeRepository) GetByOwner(ctx context.Context, ownerID int32) (*domain.InviteCode, error) {
	c := &domain.InviteCode{}
	query := `SELECT ` + inviteCodeColumns + ` FROM invite_codes WHERE owner_id = $1 ORDER BY created_on DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&c.ID, &c.OwnerID, &c.Code, &c.Scans, &c.LastScannedAt, &c.ExpiresAt, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user %d has no invite code", ownerID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RecordScan bumps the scan counter in SQL and returns the fresh row;
// concurrent scans cannot lose increments.
func (r *inviteCodeRepository) RecordScan(ctx context.Context, code string, scannedAt time.Time) (*domain.InviteCode, error) {
	c := &domain.InviteCode{}
	query := `UPDATE invite_codes SET scans = scans + 1, last_scanned_at = $1 WHERE code = $2
	          RETURNING ` + inviteCodeColumns
	err := r.db.QueryRowContext(ctx, query, scannedAt, code).Scan(&c.ID, &c.OwnerID, &c.Code, &c.Scans, &c.LastScannedAt, &c.ExpiresAt, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("invite code not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Expire stamps expires_at to the given instant; the row stays live.
func (r *inviteCodeRepository) Expire(ctx context.Context, ownerID int32, expiredAt time.Time) (bool, error) {
	query := `UPDATE invite_codes SET expires_at = $1 WHERE owner_id = $2 AND (expires_at IS NULL OR expires_at > $1)`
	res, err := r.db.ExecContext(ctx, query, expiredAt, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
