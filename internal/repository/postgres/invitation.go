package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, email, church_name, token, invited_by, status, expires_at, claimed_by, claimed_at, created_on, updated_on`

func (r *invitationRepository) Create(ctx context.Context, inv *domain.ChurchInvitation) error {
	query := `INSERT INTO church_invitations (email, church_name, token, invited_by, status, expires_at, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, inv.Email, inv.ChurchName, inv.Token, inv.InvitedBy, inv.Status, inv.ExpiresAt, time.Now(), time.Now()).Scan(&inv.ID)
	if err != nil {
		return err
	}
	// Seed the analytics row alongside the invitation.
	_, err = r.db.ExecContext(ctx, `INSERT INTO invitation_analytics (invitation_id, sent_count, resend_count, scan_count) VALUES ($1, 0, 0, 0)`, inv.ID)
	return err
}

func (r *invitationRepository) GetByID(ctx context.Context, id int32) (*domain.ChurchInvitation, error) {
	inv := &domain.ChurchInvitation{}
	query := `SELECT ` + invitationColumns + ` FROM church_invitations WHERE id = $1`
	err := r.scanInvitation(r.db.QueryRowContext(ctx, query, id), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("invitation %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error) {
	inv := &domain.ChurchInvitation{}
	query := `SELECT ` + invitationColumns + ` FROM church_invitations WHERE token = $1`
	err := r.scanInvitation(r.db.QueryRowContext(ctx, query, token), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("invitation not found")
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetPendingByEmail(ctx context.Context, email string) (*domain.ChurchInvitation, error) {
	inv := &domain.ChurchInvitation{}
	query := `SELECT ` + invitationColumns + ` FROM church_invitations WHERE email = $1 AND status = $2 ORDER BY created_on DESC LIMIT 1`
	err := r.scanInvitation(r.db.QueryRowContext(ctx, query, email, domain.InvitationStatusPending), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no pending invitation for %s", email)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) scanInvitation(row *sql.Row, inv *domain.ChurchInvitation) error {
	return row.Scan(&inv.ID, &inv.Email, &inv.ChurchName, &inv.Token, &inv.InvitedBy, &inv.Status, &inv.ExpiresAt, &inv.ClaimedBy, &inv.ClaimedAt, &inv.CreatedOn, &inv.UpdatedOn)
}

func (r *invitationRepository) SetStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error) {
	query := `UPDATE church_invitations SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *invitationRepository) MarkClaimed(ctx context.Context, id, userID int32, claimedAt time.Time) (bool, error) {
	query := `UPDATE church_invitations SET status=$1, claimed_by=$2, claimed_at=$3, updated_on=$4 WHERE id=$5 AND status=$6`
	res, err := r.db.ExecContext(ctx, query, domain.InvitationStatusClaimed, userID, claimedAt, time.Now(), id, domain.InvitationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ResetExpiry extends a PENDING invitation's deadline; resending an
// invitation in any other status matches no row.
func (r *invitationRepository) ResetExpiry(ctx context.Context, id int32, expiresAt time.Time) (bool, error) {
	query := `UPDATE church_invitations SET expires_at=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, expiresAt, time.Now(), id, domain.InvitationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *invitationRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	query := `UPDATE church_invitations SET status=$1, updated_on=$2 WHERE status=$3 AND expires_at < $4 RETURNING id`
	return collectExpiredIDs(r.db.QueryContext(ctx, query, domain.InvitationStatusExpired, time.Now(), domain.InvitationStatusPending, now))
}

func (r *invitationRepository) IncrementSent(ctx context.Context, invitationID int32) error {
	query := `UPDATE invitation_analytics SET sent_count = sent_count + 1 WHERE invitation_id = $1`
	_, err := r.db.ExecContext(ctx, query, invitationID)
	return err
}

func (r *invitationRepository) IncrementResent(ctx context.Context, invitationID int32) error {
	query := `UPDATE invitation_analytics SET resend_count = resend_count + 1 WHERE invitation_id = $1`
	_, err := r.db.ExecContext(ctx, query, invitationID)
	return err
}

func (r *invitationRepository) GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error) {
	a := &domain.InvitationAnalytics{}
	query := `SELECT invitation_id, sent_count, resend_count, scan_count FROM invitation_analytics WHERE invitation_id = $1`
	err := r.db.QueryRowContext(ctx, query, invitationID).Scan(&a.InvitationID, &a.SentCount, &a.ResendCount, &a.ScanCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no analytics for invitation %d", invitationID)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
