package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/domain"
	"github.com/missao-redime/church-service/internal/events"
	"github.com/missao-redime/church-service/internal/repository"
	apperrors "github.com/missao-redime/church-service/pkg/util"
)

const donationListLimit = 50

// DonationService records pledged offerings. Payment processing is not
// implemented; donations stay PENDING until an external processor settles
// them.
type DonationService struct {
	donations  repository.DonationRepository
	dispatcher events.Dispatcher
}

// NewDonationService constructs the service.
func NewDonationService(donations repository.DonationRepository, dispatcher events.Dispatcher) *DonationService {
	return &DonationService{donations: donations, dispatcher: dispatcher}
}

// DonationInput carries a public donation submission.
type DonationInput struct {
	Amount      float64
	Type        string
	Frequency   string
	Message     *string
	DonorName   *string
	IsAnonymous bool
}

var donationTypes = map[domain.DonationType]struct{}{
	domain.DonationTypeGeneral:        {},
	domain.DonationTypeMissions:       {},
	domain.DonationTypeBuilding:       {},
	domain.DonationTypeSpecialProject: {},
}

var donationFrequencies = map[domain.DonationFrequency]struct{}{
	domain.DonationFrequencyOneTime:   {},
	domain.DonationFrequencyMonthly:   {},
	domain.DonationFrequencyQuarterly: {},
	domain.DonationFrequencyYearly:    {},
}

// Create validates and records a donation. The submission is public; when a
// session exists the donation is associated with the caller.
func (s *DonationService) Create(ctx context.Context, actor *auth.Claims, input DonationInput) (*domain.Donation, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("donation amount must be positive", nil)
	}
	donationType := domain.DonationType(input.Type)
	if _, ok := donationTypes[donationType]; !ok {
		return nil, apperrors.NewValidationError("invalid donation type", map[string]any{"type": input.Type})
	}
	frequency := domain.DonationFrequency(input.Frequency)
	if _, ok := donationFrequencies[frequency]; !ok {
		return nil, apperrors.NewValidationError("invalid donation frequency", map[string]any{"frequency": input.Frequency})
	}

	donation := &domain.Donation{
		Amount:      input.Amount,
		Currency:    "BRL",
		Type:        donationType,
		Frequency:   frequency,
		Status:      domain.DonationStatusPending,
		Message:     input.Message,
		DonorName:   input.DonorName,
		IsAnonymous: input.IsAnonymous,
	}
	if actor != nil {
		donation.UserID = &actor.UserID
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventDonationReceived,
			Timestamp: time.Now(),
			Payload: events.DonationReceivedPayload{
				DonationID: donation.ID,
				Amount:     donation.Amount,
				Type:       donation.Type,
				Frequency:  donation.Frequency,
				Anonymous:  donation.IsAnonymous,
			},
		}
		if actor != nil {
			event.Actor = events.Actor{UserID: &actor.UserID, Role: &actor.Role}
		}
		_ = s.dispatcher.Publish(ctx, event)
	}

	return donation, nil
}

// ListRecent returns the newest donations, capped.
func (s *DonationService) ListRecent(ctx context.Context) ([]domain.Donation, error) {
	donations, err := s.donations.ListRecent(ctx, donationListLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return donations, nil
}
