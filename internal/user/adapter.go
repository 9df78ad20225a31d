package user

import (
	"strings"
	"time"

	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewUserFromRequest builds the record stored on self-registration.
// Every new account starts as an active donor.
func NewUserFromRequest(req CreateUserRequest, now time.Time) *User {
	return &User{
		Email:      common.NormalizeEmail(req.Email),
		Name:       req.Name,
		Avatar:     req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
		Role:       shared.RoleDonor,
		Status:     shared.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
		Profile:    profileFromExtras(req.Extras),
	}
}

// reservedFields are stored from typed fields or set by the server and are
// never taken from the free-form part of a registration body.
var reservedFields = map[string]struct{}{
	"_id": {}, "id": {}, "email": {}, "role": {}, "status": {},
	"createdAt": {}, "updatedAt": {},
	"name": {}, "avatar": {}, "bloodGroup": {}, "district": {}, "upazila": {},
}

func profileFromExtras(extras map[string]interface{}) bson.M {
	profile := bson.M{}
	for k, v := range extras {
		if _, reserved := reservedFields[k]; reserved {
			continue
		}
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			continue
		}
		profile[k] = v
	}
	if len(profile) == 0 {
		return nil
	}
	return profile
}

// ToAccount projects a user onto the fields the role gate needs.
// Records with a missing or unknown role or status read as active donors.
func ToAccount(u *User) *shared.Account {
	if u == nil {
		return nil
	}
	role, err := shared.ParseRole(string(u.Role))
	if err != nil {
		role = shared.RoleDonor
	}
	status, err := shared.ParseStatus(string(u.Status))
	if err != nil {
		status = shared.StatusActive
	}
	return &shared.Account{
		ID:     u.ID.Hex(),
		Email:  u.Email,
		Role:   role,
		Status: status,
	}
}
