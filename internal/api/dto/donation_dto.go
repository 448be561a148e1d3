package dto

// DonationRequest payload for a public donation submission.
type DonationRequest struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Frequency   string  `json:"frequency"`
	Message     *string `json:"message"`
	DonorName   *string `json:"donor_name"`
	IsAnonymous bool    `json:"is_anonymous"`
}
