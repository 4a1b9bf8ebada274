package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, church_id, donor_id, title, description, category, status, moderation_status, claimer_id, claimed_at, completed_at, offer_to_members, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (church_id, donor_id, title, description, category, status, moderation_status, offer_to_members, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, it.ChurchID, it.DonorID, it.Title, it.Description, it.Category, it.Status, it.ModerationStatus, it.OfferToMembers, time.Now(), time.Now()).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.ChurchID, &it.DonorID, &it.Title, &it.Description, &it.Category, &it.Status, &it.ModerationStatus, &it.ClaimerID, &it.ClaimedAt, &it.CompletedAt, &it.OfferToMembers, &it.CreatedOn, &it.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("item %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET title=$1, description=$2, category=$3, moderation_status=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, it.Title, it.Description, it.Category, it.ModerationStatus, time.Now(), it.ID)
	return err
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

func (r *itemRepository) ListByChurch(ctx context.Context, churchID int32, page, pageSize int32) ([]domain.Item, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM items WHERE church_id = $1`, churchID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE church_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, churchID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.ChurchID, &it.DonorID, &it.Title, &it.Description, &it.Category, &it.Status, &it.ModerationStatus, &it.ClaimerID, &it.ClaimedAt, &it.CompletedAt, &it.OfferToMembers, &it.CreatedOn, &it.UpdatedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}

// Claim sets the claimer only while the item is still AVAILABLE; two
// concurrent claims cannot both see a matched row.
func (r *itemRepository) Claim(ctx context.Context, itemID, claimerID int32, claimedAt time.Time) (bool, error) {
	query := `UPDATE items SET status=$1, claimer_id=$2, claimed_at=$3, updated_on=$4 WHERE id=$5 AND status=$6`
	res, err := r.db.ExecContext(ctx, query, domain.ItemStatusClaimed, claimerID, claimedAt, time.Now(), itemID, domain.ItemStatusAvailable)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Unclaim releases the item only for its current claimer.
func (r *itemRepository) Unclaim(ctx context.Context, itemID, claimerID int32) (bool, error) {
	query := `UPDATE items SET status=$1, claimer_id=NULL, claimed_at=NULL, updated_on=$2 WHERE id=$3 AND status=$4 AND claimer_id=$5`
	res, err := r.db.ExecContext(ctx, query, domain.ItemStatusAvailable, time.Now(), itemID, domain.ItemStatusClaimed, claimerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *itemRepository) Complete(ctx context.Context, itemID int32, completedAt time.Time) (bool, error) {
	query := `UPDATE items SET status=$1, completed_at=$2, updated_on=$3 WHERE id=$4 AND status=$5 AND claimer_id IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, domain.ItemStatusCompleted, completedAt, time.Now(), itemID, domain.ItemStatusClaimed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *itemRepository) SetOfferToMembers(ctx context.Context, itemID int32, offer bool) error {
	query := `UPDATE items SET offer_to_members=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, offer, time.Now(), itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("item %d not found", itemID)
	}
	return nil
}
