package domain

import "time"

// DonationType designates where an offering is directed.
type DonationType string

const (
	DonationTypeGeneral        DonationType = "GENERAL"
	DonationTypeMissions       DonationType = "MISSIONS"
	DonationTypeBuilding       DonationType = "BUILDING"
	DonationTypeSpecialProject DonationType = "SPECIAL_PROJECT"
)

// DonationFrequency designates the pledged recurrence.
type DonationFrequency string

const (
	DonationFrequencyOneTime   DonationFrequency = "ONE_TIME"
	DonationFrequencyMonthly   DonationFrequency = "MONTHLY"
	DonationFrequencyQuarterly DonationFrequency = "QUARTERLY"
	DonationFrequencyYearly    DonationFrequency = "YEARLY"
)

// DonationStatus tracks settlement. New donations start PENDING; an external
// payment processor moves them forward.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "PENDING"
	DonationStatusCompleted DonationStatus = "COMPLETED"
	DonationStatusFailed    DonationStatus = "FAILED"
)

// Donation is a pledged offering. UserID is set only when the donor was
// authenticated at submission time.
type Donation struct {
	ID            string
	UserID        *string
	DonorName     *string
	Amount        float64
	Currency      string
	Type          DonationType
	Frequency     DonationFrequency
	Status        DonationStatus
	Message       *string
	IsAnonymous   bool
	PaymentMethod *string
	TransactionID *string
	CreatedAt     time.Time
}
