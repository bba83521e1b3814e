package model

import "time"

// User is a guest or operator account. Password holds the bcrypt hash,
// never the cleartext.
type User struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Password   string    `json:"-" bson:"password" validate:"required"`
	Role       string    `json:"role" bson:"role" validate:"required,oneof=SUPER_ADMIN ADMIN CUSTOMER"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Department string    `json:"department,omitempty" bson:"department,omitempty" validate:"omitempty,max=100"`
	IsActive   bool      `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// Summary projects the user into its booking display form.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
	}
}
