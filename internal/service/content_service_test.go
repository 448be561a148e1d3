package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/missao-redime/church-service/internal/domain"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

type fakeSermonRepo struct {
	mu      sync.Mutex
	seq     int
	sermons map[string]*domain.Sermon
}

func newFakeSermonRepo() *fakeSermonRepo {
	return &fakeSermonRepo{sermons: make(map[string]*domain.Sermon)}
}

func (f *fakeSermonRepo) Create(_ context.Context, sermon *domain.Sermon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	sermon.ID = fmt.Sprintf("sermon-%d", f.seq)
	cp := *sermon
	f.sermons[sermon.ID] = &cp
	return nil
}

func (f *fakeSermonRepo) Update(_ context.Context, sermon *domain.Sermon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sermons[sermon.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *sermon
	f.sermons[sermon.ID] = &cp
	return nil
}

func (f *fakeSermonRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sermons[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.sermons, id)
	return nil
}

func (f *fakeSermonRepo) GetByID(_ context.Context, id string) (*domain.Sermon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sermons[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSermonRepo) GetBySlug(_ context.Context, slug string) (*domain.Sermon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sermons {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSermonRepo) ListPublished(_ context.Context) ([]domain.Sermon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Sermon
	for _, s := range f.sermons {
		if s.Published {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSermonRepo) ListAll(_ context.Context) ([]domain.Sermon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Sermon
	for _, s := range f.sermons {
		result = append(result, *s)
	}
	return result, nil
}

func newContentService(repo *fakeSermonRepo) *ContentService {
	// nil cache: the service must degrade to plain repository reads
	return NewContentService(repo, nil, zap.NewNop())
}

func TestCreateSermonSlugsTitle(t *testing.T) {
	svc := newContentService(newFakeSermonRepo())

	sermon, err := svc.CreateSermon(context.Background(), SermonInput{
		Title:      "A Graça que Transforma",
		Speaker:    "Pr. Carlos",
		PreachedAt: time.Now(),
		Published:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "a-graca-que-transforma", sermon.Slug)
}

func TestCreateSermonValidation(t *testing.T) {
	svc := newContentService(newFakeSermonRepo())

	_, err := svc.CreateSermon(context.Background(), SermonInput{Title: "Sem pregador"})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	repo := newFakeSermonRepo()
	svc := newContentService(repo)
	ctx := context.Background()

	_, err := svc.CreateSermon(ctx, SermonInput{
		Title:      "Rascunho",
		Speaker:    "Pr. Carlos",
		PreachedAt: time.Now(),
		Published:  false,
	})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, "rascunho")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	repo := newFakeSermonRepo()
	svc := newContentService(repo)
	ctx := context.Background()

	_, err := svc.CreateSermon(ctx, SermonInput{Title: "Publicado", Speaker: "Pr. A", PreachedAt: time.Now(), Published: true})
	require.NoError(t, err)
	_, err = svc.CreateSermon(ctx, SermonInput{Title: "Rascunho", Speaker: "Pr. B", PreachedAt: time.Now(), Published: false})
	require.NoError(t, err)

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "publicado", published[0].Slug)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLiveStatusDefaultsOffAir(t *testing.T) {
	svc := newContentService(newFakeSermonRepo())

	status, err := svc.LiveStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.OnAir)
}

func TestDeleteSermonNotFound(t *testing.T) {
	svc := newContentService(newFakeSermonRepo())

	err := svc.DeleteSermon(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
