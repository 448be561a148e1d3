package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/missao-redime/church-service/internal/domain"
)

// DonationRepository persists pledged offerings.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	ListRecent(ctx context.Context, limit int) ([]domain.Donation, error)
}

type donationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository builds the repository.
func NewDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &donationRepository{pool: pool}
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	const query = `
        INSERT INTO donations (user_id, donor_name, amount, currency, type, frequency, status, message, is_anonymous, payment_method, transaction_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		donation.UserID,
		donation.DonorName,
		donation.Amount,
		donation.Currency,
		donation.Type,
		donation.Frequency,
		donation.Status,
		donation.Message,
		donation.IsAnonymous,
		donation.PaymentMethod,
		donation.TransactionID,
	).Scan(&donation.ID, &donation.CreatedAt)
}

func (r *donationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	const query = `
        SELECT id, user_id, donor_name, amount, currency, type, frequency, status, message, is_anonymous, payment_method, transaction_id, created_at
        FROM donations ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.DonorName, &d.Amount, &d.Currency, &d.Type, &d.Frequency,
			&d.Status, &d.Message, &d.IsAnonymous, &d.PaymentMethod, &d.TransactionID, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
