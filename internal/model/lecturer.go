package model

import "time"

// Lecturer is the profile of an authenticated lecturer. UserID is the token subject.
type Lecturer struct {
	UserID     string    `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	AvatarURL  string    `db:"avatar_url" json:"avatar_url"`
	PayrollID  *string   `db:"payroll_id" json:"payroll_id,omitempty"` // internal HR reference, never returned by the API
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
