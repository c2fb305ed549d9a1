package schema

type (
	// AuthenticationRequest represents login credentials
	AuthenticationRequest struct {
		Email    string `json:"email"`
		Password string `json:"password,omitempty"`
	}

	// RegisterRequest represents a new account
	RegisterRequest struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password,omitempty"`
	}

	// AuthenticationResponse carries the issued credential pair
	AuthenticationResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
)
