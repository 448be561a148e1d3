package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/persistence"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

const (
	sermonListKey   = "content:sermons"
	sermonSlugKey   = "content:sermon:"
	liveStatusKey   = "content:live"
	contentCacheTTL = 5 * time.Minute
)

// ContentService serves public content: sermon messages and the live-stream
// status. Reads go through a redis cache-aside layer; a redis outage
// degrades to uncached Postgres reads.
type ContentService struct {
	sermons repository.SermonRepository
	cache   *persistence.Redis
	logger  *zap.Logger
}

// NewContentService constructs the service.
func NewContentService(sermons repository.SermonRepository, cache *persistence.Redis, logger *zap.Logger) *ContentService {
	return &ContentService{sermons: sermons, cache: cache, logger: logger}
}

// SermonInput carries fields for sermon create/update.
type SermonInput struct {
	Title       string
	Speaker     string
	Description string
	VideoURL    *string
	PreachedAt  time.Time
	Published   bool
}

// ListPublished returns published sermons, newest first.
func (s *ContentService) ListPublished(ctx context.Context) ([]domain.Sermon, error) {
	var cached []domain.Sermon
	if s.cacheGet(ctx, sermonListKey, &cached) {
		return cached, nil
	}

	sermons, err := s.sermons.ListPublished(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, sermonListKey, sermons)
	return sermons, nil
}

// GetBySlug returns one published sermon.
func (s *ContentService) GetBySlug(ctx context.Context, slug string) (*domain.Sermon, error) {
	var cached domain.Sermon
	if s.cacheGet(ctx, sermonSlugKey+slug, &cached) {
		return &cached, nil
	}

	sermon, err := s.sermons.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sermon", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !sermon.Published {
		return nil, apperrors.NewNotFound("sermon", nil)
	}
	s.cacheSet(ctx, sermonSlugKey+slug, sermon)
	return sermon, nil
}

// ListAll returns every sermon for the admin area, drafts included.
func (s *ContentService) ListAll(ctx context.Context) ([]domain.Sermon, error) {
	sermons, err := s.sermons.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sermons, nil
}

// CreateSermon registers a new message recording.
func (s *ContentService) CreateSermon(ctx context.Context, input SermonInput) (*domain.Sermon, error) {
	if input.Title == "" || input.Speaker == "" {
		return nil, apperrors.NewValidationError("title and speaker are required", nil)
	}

	sermon := &domain.Sermon{
		Title:       input.Title,
		Slug:        Slugify(input.Title),
		Speaker:     input.Speaker,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		PreachedAt:  input.PreachedAt,
		Published:   input.Published,
	}
	if err := s.sermons.Create(ctx, sermon); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, sermon.Slug)
	return sermon, nil
}

// UpdateSermon modifies an existing sermon and invalidates cache entries.
func (s *ContentService) UpdateSermon(ctx context.Context, id string, input SermonInput) (*domain.Sermon, error) {
	sermon, err := s.sermons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sermon", nil)
		}
		return nil, apperrors.MapError(err)
	}

	oldSlug := sermon.Slug
	if input.Title != "" {
		sermon.Title = input.Title
		sermon.Slug = Slugify(input.Title)
	}
	if input.Speaker != "" {
		sermon.Speaker = input.Speaker
	}
	if input.Description != "" {
		sermon.Description = input.Description
	}
	if input.VideoURL != nil {
		sermon.VideoURL = input.VideoURL
	}
	if !input.PreachedAt.IsZero() {
		sermon.PreachedAt = input.PreachedAt
	}
	sermon.Published = input.Published

	if err := s.sermons.Update(ctx, sermon); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, oldSlug, sermon.Slug)
	return sermon, nil
}

// DeleteSermon removes a sermon. ADMIN only, enforced by route middleware.
func (s *ContentService) DeleteSermon(ctx context.Context, id string) error {
	sermon, err := s.sermons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sermon", nil)
		}
		return apperrors.MapError(err)
	}
	if err := s.sermons.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, sermon.Slug)
	return nil
}

// LiveStatus reads the live-stream state. Absent key means off air.
func (s *ContentService) LiveStatus(ctx context.Context) (*domain.LiveStatus, error) {
	var status domain.LiveStatus
	if s.cache != nil && s.cache.Client != nil {
		raw, err := s.cache.Client.Get(ctx, liveStatusKey).Result()
		switch {
		case err == nil:
			if jsonErr := json.Unmarshal([]byte(raw), &status); jsonErr == nil {
				return &status, nil
			}
		case errors.Is(err, redis.Nil):
			// no status set yet
		default:
			s.logger.Warn("live status read failed", zap.Error(err))
		}
	}
	return &domain.LiveStatus{OnAir: false}, nil
}

// SetLiveStatus updates the live-stream state. ADMIN only, enforced by
// route middleware. No TTL: the status holds until the next update.
func (s *ContentService) SetLiveStatus(ctx context.Context, status domain.LiveStatus) error {
	if s.cache == nil || s.cache.Client == nil {
		return apperrors.NewInternalError(errors.New("live status store unavailable"))
	}
	status.UpdatedAt = time.Now()
	raw, err := json.Marshal(status)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.cache.Client.Set(ctx, liveStatusKey, raw, 0).Err(); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ContentService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.cache.Client == nil {
		return false
	}
	raw, err := s.cache.Client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("content cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *ContentService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, contentCacheTTL).Err(); err != nil {
		s.logger.Debug("content cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ContentService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	keys := []string{sermonListKey}
	for _, slug := range slugs {
		keys = append(keys, sermonSlugKey+slug)
	}
	if err := s.cache.Client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("content cache invalidation failed", zap.Error(err))
	}
}
