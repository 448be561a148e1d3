package domain

import "time"

// MemberProfile carries the personal data attached to an account. Address is
// the only required field; Brazilian address parts are kept separate so the
// admin area can render them individually.
type MemberProfile struct {
	ID         string
	UserID     string
	Phone      *string
	Address    string
	Number     *string
	Complement *string
	City       *string
	State      *string
	ZipCode    *string
	BirthDate  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member is the aggregate the admin area works with: the account plus its
// profile and department links. Profile is nil for accounts created before
// profile data existed.
type Member struct {
	User
	Profile        *MemberProfile
	Departments    []Department
	LedDepartments []Department
}
