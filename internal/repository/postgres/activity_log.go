package postgres

import (
	"context"
	"database/sql"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, e *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (actor_id, action, entity_type, entity_id, detail, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.ActorID, e.Action, e.EntityType, e.EntityID, e.Detail, time.Now()).Scan(&e.ID)
}

func (r *activityLogRepository) ListByEntity(ctx context.Context, entityType string, entityID, limit int32) ([]domain.ActivityLog, error) {
	query := `SELECT id, actor_id, action, entity_type, entity_id, detail, created_on
	          FROM activity_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_on DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var e domain.ActivityLog
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
