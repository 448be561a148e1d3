package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/events"
	"github.com/missao-redime/church-service/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) nextID() string {
	f.seq++
	return fmt.Sprintf("user-%d", f.seq)
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByCPF(_ context.Context, cpf string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.CPF == cpf {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeMemberRepo struct {
	mu          sync.Mutex
	users       *fakeUserRepo
	seq         int
	profiles    map[string]*domain.MemberProfile // by profile ID
	departments map[string][]string              // profile ID -> department IDs
}

func newFakeMemberRepo(users *fakeUserRepo) *fakeMemberRepo {
	return &fakeMemberRepo{
		users:       users,
		profiles:    make(map[string]*domain.MemberProfile),
		departments: make(map[string][]string),
	}
}

func (f *fakeMemberRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.MemberProfile, departmentIDs []string) error {
	if err := f.users.Create(ctx, user); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	profile.ID = fmt.Sprintf("profile-%d", f.seq)
	profile.UserID = user.ID
	cp := *profile
	f.profiles[profile.ID] = &cp
	f.departments[profile.ID] = append([]string{}, departmentIDs...)
	return nil
}

func (f *fakeMemberRepo) GetProfileByUserID(_ context.Context, userID string) (*domain.MemberProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) UpdateProfile(_ context.Context, profile *domain.MemberProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *profile
	f.profiles[profile.ID] = &cp
	return nil
}

func (f *fakeMemberRepo) SetDepartments(_ context.Context, profileID string, departmentIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.departments[profileID] = append([]string{}, departmentIDs...)
	return nil
}

func (f *fakeMemberRepo) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	member := &domain.Member{User: *user}
	if profile, err := f.GetProfileByUserID(ctx, userID); err == nil {
		member.Profile = profile
	}
	return member, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, _ repository.MemberListFilters) ([]domain.Member, error) {
	f.users.mu.Lock()
	ids := make([]string, 0, len(f.users.users))
	for id, u := range f.users.users {
		if u.Active {
			ids = append(ids, id)
		}
	}
	f.users.mu.Unlock()

	var members []domain.Member
	for _, id := range ids {
		m, err := f.GetMember(ctx, id)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, nil
}

func (f *fakeMemberRepo) CountActive(_ context.Context) (int, error) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	count := 0
	for _, u := range f.users.users {
		if u.Active {
			count++
		}
	}
	return count, nil
}

type fakeDepartmentRepo struct {
	mu    sync.Mutex
	seq   int
	depts map[string]*domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{depts: make(map[string]*domain.Department)}
}

func (f *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	dept.ID = fmt.Sprintf("dept-%d", f.seq)
	cp := *dept
	f.depts[dept.ID] = &cp
	return nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.depts[dept.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *dept
	f.depts[dept.ID] = &cp
	return nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.depts[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]domain.DepartmentWithStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.DepartmentWithStats
	for _, d := range f.depts {
		result = append(result, domain.DepartmentWithStats{Department: *d})
	}
	return result, nil
}

func (f *fakeDepartmentRepo) ListActive(_ context.Context) ([]domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Department
	for _, d := range f.depts {
		if d.IsActive {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (f *fakeDepartmentRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.depts), nil
}

type fakeDonationRepo struct {
	mu        sync.Mutex
	seq       int
	donations []domain.Donation
}

func (f *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	donation.ID = fmt.Sprintf("donation-%d", f.seq)
	f.donations = append(f.donations, *donation)
	return nil
}

func (f *fakeDonationRepo) ListRecent(_ context.Context, limit int) ([]domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := append([]domain.Donation{}, f.donations...)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakePrayerRepo struct {
	mu       sync.Mutex
	seq      int
	requests map[string]*domain.PrayerRequest
	prayed   []string
}

func newFakePrayerRepo() *fakePrayerRepo {
	return &fakePrayerRepo{requests: make(map[string]*domain.PrayerRequest)}
}

func (f *fakePrayerRepo) Create(_ context.Context, req *domain.PrayerRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = fmt.Sprintf("prayer-%d", f.seq)
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakePrayerRepo) List(_ context.Context) ([]domain.PrayerRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.PrayerRequest
	for _, r := range f.requests {
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakePrayerRepo) MarkPrayed(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[id]; !ok {
		return pgx.ErrNoRows
	}
	f.requests[id].Status = domain.PrayerRequestStatusPrayed
	f.prayed = append(f.prayed, id)
	return nil
}

// recordingDispatcher captures published events for assertion.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.published...)
}
