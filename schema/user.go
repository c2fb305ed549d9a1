package schema

// Role is a user role
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type (
	// User represents the authenticated account
	User struct {
		ID        int    `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Role      Role   `json:"role"`
	}

	UpdateUserRequest struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	ChangePasswordRequest struct {
		CurrentPassword      string `json:"currentPassword,omitempty"`
		NewPassword          string `json:"newPassword,omitempty"`
		ConfirmationPassword string `json:"confirmationPassword,omitempty"`
	}
)
