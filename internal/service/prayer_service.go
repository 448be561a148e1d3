package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/events"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

// PrayerService handles prayer-room submissions.
type PrayerService struct {
	requests   repository.PrayerRequestRepository
	dispatcher events.Dispatcher
}

// NewPrayerService constructs the service.
func NewPrayerService(requests repository.PrayerRequestRepository, dispatcher events.Dispatcher) *PrayerService {
	return &PrayerService{requests: requests, dispatcher: dispatcher}
}

// PrayerRequestInput carries a public submission.
type PrayerRequestInput struct {
	Name     string
	Contact  *string
	Request  string
	IsPublic bool
}

// Submit records a new prayer request.
func (s *PrayerService) Submit(ctx context.Context, input PrayerRequestInput) (*domain.PrayerRequest, error) {
	if input.Name == "" || input.Request == "" {
		return nil, apperrors.NewValidationError("name and request are required", nil)
	}

	req := &domain.PrayerRequest{
		Name:     input.Name,
		Contact:  input.Contact,
		Request:  input.Request,
		IsPublic: input.IsPublic,
		Status:   domain.PrayerRequestStatusNew,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPrayerRequestSubmitted,
			Timestamp: time.Now(),
			Payload: events.PrayerRequestSubmittedPayload{
				RequestID: req.ID,
				Name:      req.Name,
				Public:    req.IsPublic,
			},
		})
	}

	return req, nil
}

// List returns all requests, newest first.
func (s *PrayerService) List(ctx context.Context) ([]domain.PrayerRequest, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// MarkPrayed flags a request as covered by the intercession team.
func (s *PrayerService) MarkPrayed(ctx context.Context, id string) error {
	if err := s.requests.MarkPrayed(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("prayer request", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
