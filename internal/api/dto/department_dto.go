package dto

// DepartmentRequest payload for department create/update.
type DepartmentRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	LeaderID    *string `json:"leader_id"`
	ImageURL    *string `json:"image_url"`
}
