package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, church_id, membership_status, verified_at, join_requested_at, inviter_id, invites_completed, disabled, device_token, created_on, updated_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, role, church_id, membership_status, inviter_id, disabled, device_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Role, u.ChurchID, u.MembershipStatus, u.InviterID, u.Disabled, u.DeviceToken, time.Now(), time.Now()).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("user with email %s already exists", u.Email)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.scanUser(r.db.QueryRowContext(ctx, query, id), u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.scanUser(r.db.QueryRowContext(ctx, query, email), u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user with email %s not found", email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) scanUser(row *sql.Row, u *domain.User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.ChurchID, &u.MembershipStatus, &u.VerifiedAt, &u.JoinRequestedAt, &u.InviterID, &u.InvitesCompleted, &u.Disabled, &u.DeviceToken, &u.CreatedOn, &u.UpdatedOn)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, device_token=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.DeviceToken, time.Now(), u.ID)
	return err
}

func (r *userRepository) SetMembershipRequested(ctx context.Context, userID, churchID int32, requestedAt time.Time) error {
	query := `UPDATE users SET membership_status=$1, church_id=$2, join_requested_at=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, domain.MembershipStatusRequested, churchID, requestedAt, time.Now(), userID)
	return err
}

func (r *userRepository) SetVerifiedMembership(ctx context.Context, userID, churchID int32, verifiedAt time.Time) error {
	query := `UPDATE users SET membership_status=$1, church_id=$2, verified_at=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, domain.MembershipStatusVerified, churchID, verifiedAt, time.Now(), userID)
	return err
}

func (r *userRepository) ClearMembership(ctx context.Context, userID int32) error {
	query := `UPDATE users SET membership_status=$1, church_id=NULL, verified_at=NULL, join_requested_at=NULL, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, domain.MembershipStatusNone, time.Now(), userID)
	return err
}

// IncrementInvitesCompleted bumps the referral counter in SQL so
// concurrent registrations cannot lose updates.
func (r *userRepository) IncrementInvitesCompleted(ctx context.Context, userID int32) error {
	query := `UPDATE users SET invites_completed = invites_completed + 1, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	return err
}

func (r *userRepository) SetDisabled(ctx context.Context, userID int32, disabled bool) error {
	query := `UPDATE users SET disabled=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, disabled, time.Now(), userID)
	return err
}
