package dto

// MemberCreateRequest payload for creating a member.
type MemberCreateRequest struct {
	Name          string   `json:"name"`
	CPF           string   `json:"cpf"`
	Email         *string  `json:"email"`
	Password      *string  `json:"password"`
	Phone         *string  `json:"phone"`
	Address       string   `json:"address"`
	Number        *string  `json:"number"`
	Complement    *string  `json:"complement"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	ZipCode       *string  `json:"zip_code"`
	BirthDate     *string  `json:"birth_date"`
	DepartmentIDs []string `json:"department_ids"`
}

// MemberUpdateRequest payload for updating a member. Absent fields are left
// unchanged.
type MemberUpdateRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Password      *string  `json:"password"`
	Role          *string  `json:"role"`
	Active        *bool    `json:"active"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	Number        *string  `json:"number"`
	Complement    *string  `json:"complement"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	ZipCode       *string  `json:"zip_code"`
	BirthDate     *string  `json:"birth_date"`
	DepartmentIDs []string `json:"department_ids"`
}
