package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/missao-redime/church-service/internal/domain"
)

// DepartmentRepository manages ministry department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.DepartmentWithStats, error)
	ListActive(ctx context.Context) ([]domain.Department, error)
	Count(ctx context.Context) (int, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

const departmentColumns = `id, name, slug, description, category, leader_id, image_url, is_active, created_at, updated_at`

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var d domain.Department
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Slug,
		&d.Description,
		&d.Category,
		&d.LeaderID,
		&d.ImageURL,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, slug, description, category, leader_id, image_url, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.Name,
		dept.Slug,
		dept.Description,
		dept.Category,
		dept.LeaderID,
		dept.ImageURL,
		dept.IsActive,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments
        SET name=$1, slug=$2, description=$3, category=$4, leader_id=$5, image_url=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		dept.Name,
		dept.Slug,
		dept.Description,
		dept.Category,
		dept.LeaderID,
		dept.ImageURL,
		dept.IsActive,
		dept.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id=$1`, id))
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.DepartmentWithStats, error) {
	const query = `
        SELECT d.id, d.name, d.slug, d.description, d.category, d.leader_id, d.image_url, d.is_active, d.created_at, d.updated_at,
               u.id, u.name, u.email,
               (SELECT COUNT(*) FROM member_departments md WHERE md.department_id = d.id) AS member_count
        FROM departments d
        LEFT JOIN users u ON u.id = d.leader_id
        ORDER BY d.name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentWithStats
	for rows.Next() {
		var item domain.DepartmentWithStats
		var leaderID, leaderName *string
		var leaderEmail *string
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Slug, &item.Description, &item.Category,
			&item.LeaderID, &item.ImageURL, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
			&leaderID, &leaderName, &leaderEmail,
			&item.MemberCount,
		); err != nil {
			return nil, err
		}
		if leaderID != nil && leaderName != nil {
			item.Leader = &domain.LeaderSummary{ID: *leaderID, Name: *leaderName, Email: leaderEmail}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *departmentRepository) ListActive(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT ` + departmentColumns + `
        FROM departments WHERE is_active = TRUE ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &d.Category, &d.LeaderID, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *departmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count)
	return count, err
}
