package model

// Customer is a registry entry referenced by the surrounding application.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}
