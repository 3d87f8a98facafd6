package model

import "golang.org/x/crypto/bcrypt"

// Role codes as constants
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents an authenticated user in the system. CurrentShiftID is
// the single source of truth linking a user to at most one open shift; it
// is always updated in the same critical section as the shift itself.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username" validate:"required"`
	// Password is the bcrypt hash. It must round-trip through the state
	// snapshot, so API responses go through UserResponse instead of
	// marshalling User directly.
	Password       string  `json:"password"`
	Role           string  `json:"role" validate:"required,oneof=admin cashier"`
	CurrentShiftID *string `json:"current_shift_id"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without the password hash)
type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Role           string  `json:"role"`
	CurrentShiftID *string `json:"current_shift_id"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Role:           u.Role,
		CurrentShiftID: u.CurrentShiftID,
	}
}
