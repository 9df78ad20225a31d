package auth

// TokenRequest is the identity payload posted to /jwt.
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty" binding:"omitempty,max=200"`
}
