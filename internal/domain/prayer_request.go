package domain

import "time"

// PrayerRequestStatus tracks intercession coverage.
type PrayerRequestStatus string

const (
	PrayerRequestStatusNew    PrayerRequestStatus = "NEW"
	PrayerRequestStatusPrayed PrayerRequestStatus = "PRAYED"
)

// PrayerRequest is a prayer-room submission. Contact is optional; anonymous
// submissions carry only a display name.
type PrayerRequest struct {
	ID        string
	Name      string
	Contact   *string
	Request   string
	IsPublic  bool
	Status    PrayerRequestStatus
	CreatedAt time.Time
	PrayedAt  *time.Time
}
