package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/missao-redime/church-service/internal/domain"
)

// PrayerRequestRepository persists prayer-room submissions.
type PrayerRequestRepository interface {
	Create(ctx context.Context, req *domain.PrayerRequest) error
	List(ctx context.Context) ([]domain.PrayerRequest, error)
	MarkPrayed(ctx context.Context, id string) error
}

type prayerRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPrayerRequestRepository builds the repository.
func NewPrayerRequestRepository(pool *pgxpool.Pool) PrayerRequestRepository {
	return &prayerRequestRepository{pool: pool}
}

func (r *prayerRequestRepository) Create(ctx context.Context, req *domain.PrayerRequest) error {
	const query = `
        INSERT INTO prayer_requests (name, contact, request, is_public, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		req.Name,
		req.Contact,
		req.Request,
		req.IsPublic,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *prayerRequestRepository) List(ctx context.Context) ([]domain.PrayerRequest, error) {
	const query = `
        SELECT id, name, contact, request, is_public, status, created_at, prayed_at
        FROM prayer_requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PrayerRequest
	for rows.Next() {
		var p domain.PrayerRequest
		if err := rows.Scan(&p.ID, &p.Name, &p.Contact, &p.Request, &p.IsPublic, &p.Status, &p.CreatedAt, &p.PrayedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *prayerRequestRepository) MarkPrayed(ctx context.Context, id string) error {
	const query = `
        UPDATE prayer_requests SET status=$1, prayed_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, domain.PrayerRequestStatusPrayed, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
