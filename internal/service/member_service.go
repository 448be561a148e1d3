package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/events"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// MemberService manages congregation members. Route middleware already gates
// these endpoints to LEADER-or-above; the ADMIN-only rules (role changes,
// deletion) are re-checked here against the acting principal.
type MemberService struct {
	users      repository.UserRepository
	members    repository.MemberRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// MemberDependencies encapsulates repositories for member management.
type MemberDependencies struct {
	UserRepo   repository.UserRepository
	MemberRepo repository.MemberRepository
	Dispatcher events.Dispatcher
}

// NewMemberService constructs the service.
func NewMemberService(cfg config.Config, deps MemberDependencies) *MemberService {
	return &MemberService{
		users:      deps.UserRepo,
		members:    deps.MemberRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateMemberInput carries the allow-listed fields for member creation.
type CreateMemberInput struct {
	Name          string
	CPF           string
	Email         *string
	Password      *string
	Phone         *string
	Address       string
	Number        *string
	Complement    *string
	City          *string
	State         *string
	ZipCode       *string
	BirthDate     *time.Time
	DepartmentIDs []string
}

// UpdateMemberInput carries the allow-listed fields for member updates.
// Nil means "leave unchanged".
type UpdateMemberInput struct {
	Name          *string
	Email         *string
	Password      *string
	Role          *domain.Role
	Active        *bool
	Phone         *string
	Address       *string
	Number        *string
	Complement    *string
	City          *string
	State         *string
	ZipCode       *string
	BirthDate     *time.Time
	DepartmentIDs []string
}

// List returns active members, optionally filtered by department.
func (s *MemberService) List(ctx context.Context, filters repository.MemberListFilters) ([]domain.Member, error) {
	members, err := s.members.List(ctx, filters)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

// Get returns a member with profile, departments and led departments.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.members.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// Create registers a new member. New members always start with the MEMBER
// role; promotion is a separate, admin-only update.
func (s *MemberService) Create(ctx context.Context, actor *auth.Claims, input CreateMemberInput) (*domain.Member, error) {
	if input.Name == "" || input.CPF == "" || input.Address == "" {
		return nil, apperrors.NewValidationError("name, cpf and address are required", nil)
	}

	if _, err := s.users.GetByCPF(ctx, input.CPF); err == nil {
		return nil, apperrors.NewConflict("cpf already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if input.Email != nil && *input.Email != "" {
		if _, err := s.users.GetByEmail(ctx, *input.Email); err == nil {
			return nil, apperrors.NewConflict("email already registered", nil)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	var passwordHash *string
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		passwordHash = &hash
	}

	user := &domain.User{
		Name:         input.Name,
		CPF:          input.CPF,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		Active:       true,
	}
	profile := &domain.MemberProfile{
		Phone:      input.Phone,
		Address:    input.Address,
		Number:     input.Number,
		Complement: input.Complement,
		City:       input.City,
		State:      input.State,
		ZipCode:    input.ZipCode,
		BirthDate:  input.BirthDate,
	}

	if err := s.members.CreateWithProfile(ctx, user, profile, input.DepartmentIDs); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishMemberCreated(ctx, actor, user, input.DepartmentIDs)

	return s.Get(ctx, user.ID)
}

// Update applies allow-listed changes. Only ADMIN may change another
// account's role.
func (s *MemberService) Update(ctx context.Context, actor *auth.Claims, id string, input UpdateMemberInput) (*domain.Member, error) {
	if input.Role != nil && !auth.IsAdmin(actor.Role) {
		return nil, apperrors.NewForbidden("only admins may change a member role")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = &hash
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	profile, err := s.members.GetProfileByUserID(ctx, id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if profile != nil {
		if input.Phone != nil {
			profile.Phone = input.Phone
		}
		if input.Address != nil {
			profile.Address = *input.Address
		}
		if input.Number != nil {
			profile.Number = input.Number
		}
		if input.Complement != nil {
			profile.Complement = input.Complement
		}
		if input.City != nil {
			profile.City = input.City
		}
		if input.State != nil {
			profile.State = input.State
		}
		if input.ZipCode != nil {
			profile.ZipCode = input.ZipCode
		}
		if input.BirthDate != nil {
			profile.BirthDate = input.BirthDate
		}
		if err := s.members.UpdateProfile(ctx, profile); err != nil {
			return nil, apperrors.MapError(err)
		}
		if input.DepartmentIDs != nil {
			if err := s.members.SetDepartments(ctx, profile.ID, input.DepartmentIDs); err != nil {
				return nil, apperrors.MapError(err)
			}
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a member account. ADMIN only.
func (s *MemberService) Delete(ctx context.Context, actor *auth.Claims, id string) error {
	if !auth.IsAdmin(actor.Role) {
		return apperrors.NewForbidden("only admins may delete members")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// CountActive returns the number of active member accounts.
func (s *MemberService) CountActive(ctx context.Context) (int, error) {
	count, err := s.members.CountActive(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

func (s *MemberService) publishMemberCreated(ctx context.Context, actor *auth.Claims, user *domain.User, departmentIDs []string) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMemberCreated,
		Timestamp: time.Now(),
		Payload: events.MemberCreatedPayload{
			MemberID:      user.ID,
			Name:          user.Name,
			DepartmentIDs: departmentIDs,
		},
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: &actor.UserID, Role: &actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
