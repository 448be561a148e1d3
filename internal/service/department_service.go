package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// DepartmentService manages ministry departments. Mutations are gated to
// ADMIN by the route middleware.
type DepartmentService struct {
	departments repository.DepartmentRepository
}

// NewDepartmentService constructs the service.
func NewDepartmentService(_ config.Config, departments repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// DepartmentInput carries fields for create/update.
type DepartmentInput struct {
	Name        string
	Description string
	Category    string
	LeaderID    *string
	ImageURL    *string
}

// Slugify derives a URL slug from a department name: lowercase, diacritics
// stripped, non-alphanumeric runs collapsed to single hyphens.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from NFD decomposition
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// List returns all departments with leader and member-count stats.
func (s *DepartmentService) List(ctx context.Context) ([]domain.DepartmentWithStats, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// ListActive returns active departments for the public ministries page.
func (s *DepartmentService) ListActive(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// Count returns the total number of departments.
func (s *DepartmentService) Count(ctx context.Context) (int, error) {
	count, err := s.departments.Count(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// Create registers a new department.
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	if input.Name == "" || input.Description == "" || input.Category == "" {
		return nil, apperrors.NewValidationError("name, description and category are required", nil)
	}

	dept := &domain.Department{
		Name:        input.Name,
		Slug:        Slugify(input.Name),
		Description: input.Description,
		Category:    input.Category,
		LeaderID:    input.LeaderID,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// Update modifies an existing department. The slug follows the name.
func (s *DepartmentService) Update(ctx context.Context, id string, input DepartmentInput) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != "" {
		dept.Name = input.Name
		dept.Slug = Slugify(input.Name)
	}
	if input.Description != "" {
		dept.Description = input.Description
	}
	if input.Category != "" {
		dept.Category = input.Category
	}
	if input.LeaderID != nil {
		dept.LeaderID = input.LeaderID
	}
	if input.ImageURL != nil {
		dept.ImageURL = input.ImageURL
	}

	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// Deactivate soft-disables a department; member links are kept.
func (s *DepartmentService) Deactivate(ctx context.Context, id string) error {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", nil)
		}
		return apperrors.MapError(err)
	}
	dept.IsActive = false
	if err := s.departments.Update(ctx, dept); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
