package dto

// LecturerCreateDTO is used for incoming lecturer registration requests
type LecturerCreateDTO struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"max=200"`
	PayrollID  *string `json:"payroll_id,omitempty" validate:"omitempty,max=64"`
}

// LecturerSchema shapes every lecturer response. The payroll reference is accepted on create but
// never returned.
var LecturerSchema = Schema{
	Name: "Lecturer",
	Fields: []Field{
		{Name: "user_id", Type: TypeString, Required: true, Example: "5f0c2a8e-4f57-4c1b-9a43-0d1e6f1b7c21"},
		{Name: "name", Type: TypeString, Required: true, Example: "Ada Lovelace"},
		{Name: "email", Type: TypeString, Required: true, Example: "ada@example.edu"},
		{Name: "department", Type: TypeString, Example: "Computer Science"},
		{Name: "avatar_url", Type: TypeString, Example: "https://lecturer-media.s3.ap-south-1.amazonaws.com/avatars/ada.png"},
		{Name: "payroll_id", Type: TypeString, Hidden: true},
		{Name: "created_at", Type: TypeDateTime, Required: true, Example: "2025-01-15T09:30:00Z"},
		{Name: "updated_at", Type: TypeDateTime, Required: true, Example: "2025-01-15T09:30:00Z"},
	},
}
