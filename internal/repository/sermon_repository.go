package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/missao-redime/church-service/internal/domain"
)

// SermonRepository persists message recordings.
type SermonRepository interface {
	Create(ctx context.Context, sermon *domain.Sermon) error
	Update(ctx context.Context, sermon *domain.Sermon) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Sermon, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Sermon, error)
	ListPublished(ctx context.Context) ([]domain.Sermon, error)
	ListAll(ctx context.Context) ([]domain.Sermon, error)
}

type sermonRepository struct {
	pool *pgxpool.Pool
}

// NewSermonRepository builds the repository.
func NewSermonRepository(pool *pgxpool.Pool) SermonRepository {
	return &sermonRepository{pool: pool}
}

const sermonColumns = `id, title, slug, speaker, description, video_url, preached_at, published, created_at, updated_at`

func scanSermon(row pgx.Row) (*domain.Sermon, error) {
	var s domain.Sermon
	if err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Slug,
		&s.Speaker,
		&s.Description,
		&s.VideoURL,
		&s.PreachedAt,
		&s.Published,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sermonRepository) Create(ctx context.Context, sermon *domain.Sermon) error {
	const query = `
        INSERT INTO sermons (title, slug, speaker, description, video_url, preached_at, published)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sermon.Title,
		sermon.Slug,
		sermon.Speaker,
		sermon.Description,
		sermon.VideoURL,
		sermon.PreachedAt,
		sermon.Published,
	).Scan(&sermon.ID, &sermon.CreatedAt, &sermon.UpdatedAt)
}

func (r *sermonRepository) Update(ctx context.Context, sermon *domain.Sermon) error {
	const query = `
        UPDATE sermons
        SET title=$1, slug=$2, speaker=$3, description=$4, video_url=$5, preached_at=$6, published=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		sermon.Title,
		sermon.Slug,
		sermon.Speaker,
		sermon.Description,
		sermon.VideoURL,
		sermon.PreachedAt,
		sermon.Published,
		sermon.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sermonRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sermons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sermonRepository) GetByID(ctx context.Context, id string) (*domain.Sermon, error) {
	return scanSermon(r.pool.QueryRow(ctx, `SELECT `+sermonColumns+` FROM sermons WHERE id=$1`, id))
}

func (r *sermonRepository) GetBySlug(ctx context.Context, slug string) (*domain.Sermon, error) {
	return scanSermon(r.pool.QueryRow(ctx, `SELECT `+sermonColumns+` FROM sermons WHERE slug=$1`, slug))
}

func (r *sermonRepository) ListPublished(ctx context.Context) ([]domain.Sermon, error) {
	return r.list(ctx, `SELECT `+sermonColumns+` FROM sermons WHERE published = TRUE ORDER BY preached_at DESC`)
}

func (r *sermonRepository) ListAll(ctx context.Context) ([]domain.Sermon, error) {
	return r.list(ctx, `SELECT `+sermonColumns+` FROM sermons ORDER BY preached_at DESC`)
}

func (r *sermonRepository) list(ctx context.Context, query string) ([]domain.Sermon, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sermon
	for rows.Next() {
		var s domain.Sermon
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Speaker, &s.Description, &s.VideoURL, &s.PreachedAt, &s.Published, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
