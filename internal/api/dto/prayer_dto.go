package dto

// PrayerRequestSubmission payload for the public prayer room.
type PrayerRequestSubmission struct {
	Name     string  `json:"name"`
	Contact  *string `json:"contact"`
	Request  string  `json:"request"`
	IsPublic bool    `json:"is_public"`
}
