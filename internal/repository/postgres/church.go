package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type churchRepository struct {
	db *sql.DB
}

func NewChurchRepository(db *sql.DB) repository.ChurchRepository {
	return &churchRepository{db: db}
}

const churchColumns = `id, name, description, address, latitude, longitude, lead_contact_id, application_status, requires_verification, min_verifications_required, created_on, updated_on`

func (r *churchRepository) Create(ctx context.Context, c *domain.Church) error {
	query := `INSERT INTO churches (name, description, address, latitude, longitude, lead_contact_id, application_status, requires_verification, min_verifications_required, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Description, c.Address, c.Latitude, c.Longitude, c.LeadContactID, c.ApplicationStatus, c.RequiresVerification, c.MinVerificationsRequired, time.Now(), time.Now()).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.Conflict("church %q already registered", c.Name)
	}
	return err
}

func (r *churchRepository) GetByID(ctx context.Context, id int32) (*domain.Church, error) {
	c := &domain.Church{}
	query := `SELECT ` + churchColumns + ` FROM churches WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.Latitude, &c.Longitude, &c.LeadContactID, &c.ApplicationStatus, &c.RequiresVerification, &c.MinVerificationsRequired, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("church %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *churchRepository) GetByLeadContact(ctx context.Context, leadContactID int32) (*domain.Church, error) {
	c := &domain.Church{}
	query := `SELECT ` + churchColumns + ` FROM churches WHERE lead_contact_id = $1`
	err := r.db.QueryRowContext(ctx, query, leadContactID).Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.Latitude, &c.Longitude, &c.LeadContactID, &c.ApplicationStatus, &c.RequiresVerification, &c.MinVerificationsRequired, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no church led by user %d", leadContactID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *churchRepository) List(ctx context.Context) ([]domain.Church, error) {
	query := `SELECT ` + churchColumns + ` FROM churches ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var churches []domain.Church
	for rows.Next() {
		var c domain.Church
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &c.Latitude, &c.Longitude, &c.LeadContactID, &c.ApplicationStatus, &c.RequiresVerification, &c.MinVerificationsRequired, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		churches = append(churches, c)
	}
	return churches, rows.Err()
}

func (r *churchRepository) Update(ctx context.Context, c *domain.Church) error {
	query := `UPDATE churches SET name=$1, description=$2, address=$3, latitude=$4, longitude=$5, requires_verification=$6, min_verifications_required=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.Address, c.Latitude, c.Longitude, c.RequiresVerification, c.MinVerificationsRequired, time.Now(), c.ID)
	return err
}

func (r *churchRepository) SetApplicationStatus(ctx context.Context, id int32, status domain.ApplicationStatus) error {
	query := `UPDATE churches SET application_status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("church %d not found", id)
	}
	return nil
}
