package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/missao-redime/church-service/internal/domain"
)

// MemberListFilters define listing parameters.
type MemberListFilters struct {
	DepartmentID *string
}

// MemberRepository manages member profiles and their department links.
type MemberRepository interface {
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.MemberProfile, departmentIDs []string) error
	GetProfileByUserID(ctx context.Context, userID string) (*domain.MemberProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.MemberProfile) error
	SetDepartments(ctx context.Context, profileID string, departmentIDs []string) error
	GetMember(ctx context.Context, userID string) (*domain.Member, error)
	List(ctx context.Context, filters MemberListFilters) ([]domain.Member, error)
	CountActive(ctx context.Context) (int, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository builds the repository.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

const profileColumns = `id, user_id, phone, address, number, complement, city, state, zip_code, birth_date, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.MemberProfile, error) {
	var p domain.MemberProfile
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Phone,
		&p.Address,
		&p.Number,
		&p.Complement,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.BirthDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *memberRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.MemberProfile, departmentIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const userQuery = `
        INSERT INTO users (name, cpf, email, password_hash, role, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, userQuery,
		user.Name,
		user.CPF,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	profile.UserID = user.ID
	const profileQuery = `
        INSERT INTO member_profiles (user_id, phone, address, number, complement, city, state, zip_code, birth_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, profileQuery,
		profile.UserID,
		profile.Phone,
		profile.Address,
		profile.Number,
		profile.Complement,
		profile.City,
		profile.State,
		profile.ZipCode,
		profile.BirthDate,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return err
	}

	for _, deptID := range departmentIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO member_departments (profile_id, department_id) VALUES ($1, $2)`,
			profile.ID, deptID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *memberRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.MemberProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM member_profiles WHERE user_id=$1`, userID))
}

func (r *memberRepository) UpdateProfile(ctx context.Context, profile *domain.MemberProfile) error {
	const query = `
        UPDATE member_profiles
        SET phone=$1, address=$2, number=$3, complement=$4, city=$5, state=$6, zip_code=$7, birth_date=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		profile.Phone,
		profile.Address,
		profile.Number,
		profile.Complement,
		profile.City,
		profile.State,
		profile.ZipCode,
		profile.BirthDate,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) SetDepartments(ctx context.Context, profileID string, departmentIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM member_departments WHERE profile_id=$1`, profileID); err != nil {
		return err
	}
	for _, deptID := range departmentIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO member_departments (profile_id, department_id) VALUES ($1, $2)`,
			profileID, deptID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *memberRepository) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, userID))
	if err != nil {
		return nil, err
	}

	member := &domain.Member{User: *user}

	profile, err := r.GetProfileByUserID(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	member.Profile = profile

	if profile != nil {
		depts, err := r.departmentsForProfiles(ctx, []string{profile.ID})
		if err != nil {
			return nil, err
		}
		member.Departments = depts[profile.ID]
	}

	led, err := r.ledDepartments(ctx, userID)
	if err != nil {
		return nil, err
	}
	member.LedDepartments = led

	return member, nil
}

func (r *memberRepository) List(ctx context.Context, filters MemberListFilters) ([]domain.Member, error) {
	query := `
        SELECT u.id, u.name, u.cpf, u.email, u.password_hash, u.role, u.active, u.created_at, u.updated_at,
               p.id, p.user_id, p.phone, p.address, p.number, p.complement, p.city, p.state, p.zip_code, p.birth_date, p.created_at, p.updated_at
        FROM users u
        LEFT JOIN member_profiles p ON p.user_id = u.id
        WHERE u.active = TRUE`
	args := []any{}
	if filters.DepartmentID != nil {
		query += `
          AND p.id IN (SELECT profile_id FROM member_departments WHERE department_id=$1)`
		args = append(args, *filters.DepartmentID)
	}
	query += `
        ORDER BY u.name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	var profileIDs []string
	for rows.Next() {
		var m domain.Member
		var p domain.MemberProfile
		var profileID *string
		if err := rows.Scan(
			&m.ID, &m.Name, &m.CPF, &m.Email, &m.PasswordHash, &m.Role, &m.Active, &m.CreatedAt, &m.UpdatedAt,
			&profileID, &p.UserID, &p.Phone, &p.Address, &p.Number, &p.Complement, &p.City, &p.State, &p.ZipCode, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if profileID != nil {
			p.ID = *profileID
			m.Profile = &p
			profileIDs = append(profileIDs, p.ID)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(profileIDs) > 0 {
		byProfile, err := r.departmentsForProfiles(ctx, profileIDs)
		if err != nil {
			return nil, err
		}
		for i := range members {
			if members[i].Profile != nil {
				members[i].Departments = byProfile[members[i].Profile.ID]
			}
		}
	}

	return members, nil
}

func (r *memberRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE active = TRUE`).Scan(&count)
	return count, err
}

func (r *memberRepository) departmentsForProfiles(ctx context.Context, profileIDs []string) (map[string][]domain.Department, error) {
	const query = `
        SELECT md.profile_id, d.id, d.name, d.slug, d.description, d.category, d.leader_id, d.image_url, d.is_active, d.created_at, d.updated_at
        FROM member_departments md
        JOIN departments d ON d.id = md.department_id
        WHERE md.profile_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.Department)
	for rows.Next() {
		var profileID string
		var d domain.Department
		if err := rows.Scan(&profileID, &d.ID, &d.Name, &d.Slug, &d.Description, &d.Category, &d.LeaderID, &d.ImageURL, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result[profileID] = append(result[profileID], d)
	}
	return result, rows.Err()
}

func (r *memberRepository) ledDepartments(ctx context.Context, userID string) ([]domain.Department, error) {
	const query = `
        SELECT id, name, slug, description, category, leader_id, image_url, is_active, created_at, updated_at
        FROM departments WHERE leader_id=$1`
	rows, err := r.pool.Query(ctx, query, userID)
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
