package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the access tier stored on a user record.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// Status is the account state stored on a user record.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// Identity is the payload a credential is minted from.
type Identity struct {
	Email string
	Name  string
}

// Claims represents the JWT claims structure.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenResponse is returned by the token issuer.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenService defines the credential operations.
type TokenService interface {
	IssueToken(identity Identity) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
	TTL() time.Duration
}

// Account is the stored access state of a user, as seen by the role gate.
type Account struct {
	ID     string
	Email  string
	Role   Role
	Status Status
}

// Active reports whether the account may use privileged routes.
func (a *Account) Active() bool {
	return a.Status != StatusBlocked
}

// AccountProvider resolves the stored account for a verified email.
// Implementations return an error matching common.ErrNotFound when no user exists.
type AccountProvider interface {
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}
