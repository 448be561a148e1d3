package events

import (
	"time"

	"github.com/missao-redime/church-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberCreated          EventType = "member_created"
	EventDonationReceived       EventType = "donation_received"
	EventPrayerRequestSubmitted EventType = "prayer_request_submitted"
)

// Actor encapsulates actor metadata for an event. Public submissions
// (donations, prayer requests) have no actor.
type Actor struct {
	UserID *string      `json:"user_id,omitempty"`
	Role   *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberCreatedPayload payload.
type MemberCreatedPayload struct {
	MemberID      string   `json:"member_id"`
	Name          string   `json:"name"`
	DepartmentIDs []string `json:"department_ids,omitempty"`
}

// DonationReceivedPayload payload.
type DonationReceivedPayload struct {
	DonationID string                   `json:"donation_id"`
	Amount     float64                  `json:"amount"`
	Type       domain.DonationType      `json:"type"`
	Frequency  domain.DonationFrequency `json:"frequency"`
	Anonymous  bool                     `json:"anonymous"`
}

// PrayerRequestSubmittedPayload payload.
type PrayerRequestSubmittedPayload struct {
	RequestID string `json:"request_id"`
	Name      string `json:"name"`
	Public    bool   `json:"public"`
}
