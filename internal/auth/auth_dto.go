package auth

type Credentials struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	PersonalCode string `json:"personal_code"`
}

type AuthenticateRequest struct {
	Role        string      `json:"role" binding:"required"`
	Credentials Credentials `json:"credentials"`
}

// UserResponse flattens the signed-in user variant for clients.
type UserResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Class     string `json:"class"`
	Email     string `json:"email,omitempty"`
	StudentID string `json:"student_id,omitempty"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   string       `json:"expires_at"`
}
