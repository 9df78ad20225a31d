// File: internal/user/model.go
package user

import (
	"encoding/json"
	"time"

	"blad_backend/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a stored account.
type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email      string        `bson:"email" json:"email"`
	Name       string        `bson:"name,omitempty" json:"name,omitempty"`
	Avatar     string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	BloodGroup string        `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	District   string        `bson:"district,omitempty" json:"district,omitempty"`
	Upazila    string        `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Role       shared.Role   `bson:"role" json:"role"`
	Status     shared.Status `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`

	// Profile holds any other fields the client registered with. Stored
	// inline in the document and flattened into the JSON object.
	Profile bson.M `bson:",inline" json:"-"`
}

// MarshalJSON flattens Profile into the user object. Typed fields win on
// a key clash.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	base, err := json.Marshal(plain(u))
	if err != nil || len(u.Profile) == 0 {
		return base, err
	}

	var typed map[string]json.RawMessage
	if err := json.Unmarshal(base, &typed); err != nil {
		return nil, err
	}
	merged := make(map[string]interface{}, len(u.Profile)+len(typed))
	for k, v := range u.Profile {
		merged[k] = v
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// CreateUserRequest is the self-registration payload. Role and status are
// not accepted from the client.
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email,max=254"`
	Name       string `json:"name" binding:"omitempty,max=100"`
	Avatar     string `json:"avatar" binding:"omitempty,url"`
	BloodGroup string `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   string `json:"district" binding:"omitempty,max=100"`
	Upazila    string `json:"upazila" binding:"omitempty,max=100"`

	// Extras carries the remaining body fields; filled by the handler.
	Extras map[string]interface{} `json:"-"`
}

// FilterParams narrows a user listing. Nil fields do not filter.
type FilterParams struct {
	Email *string
}

// RoleCheckResponse answers a self role lookup, e.g. {"admin": true}.
type RoleCheckResponse map[string]bool
