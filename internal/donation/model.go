// File: internal/donation/model.go
package donation

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Status is the lifecycle state of a donation request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
)

// Request is a call for blood posted by a requester.
type Request struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterName  string        `bson:"requesterName" json:"requesterName"`
	RequesterEmail string        `bson:"reqEmail" json:"reqEmail"`
	RecipientName  string        `bson:"recipientName" json:"recipientName"`
	BloodGroup     string        `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	District       string        `bson:"district" json:"district"`
	Upazila        string        `bson:"upazila" json:"upazila"`
	Hospital       string        `bson:"hospital" json:"hospital"`
	Address        string        `bson:"address" json:"address"`
	DonationDate   string        `bson:"donationDate" json:"donationDate"`
	DonationTime   string        `bson:"donationTime" json:"donationTime"`
	Message        string        `bson:"message,omitempty" json:"message,omitempty"`
	Status         Status        `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CreateRequest is the payload for posting a new donation request.
type CreateRequest struct {
	RequesterName  string `json:"requesterName" binding:"required,max=100"`
	RequesterEmail string `json:"reqEmail" binding:"required,email,max=254"`
	RecipientName  string `json:"recipientName" binding:"required,max=100"`
	BloodGroup     string `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District       string `json:"district" binding:"required,max=100"`
	Upazila        string `json:"upazila" binding:"required,max=100"`
	Hospital       string `json:"hospital" binding:"required,max=200"`
	Address        string `json:"address" binding:"required,max=300"`
	DonationDate   string `json:"donationDate" binding:"required,max=32"`
	DonationTime   string `json:"donationTime" binding:"required,max=32"`
	Message        string `json:"message" binding:"omitempty,max=1000"`
}

// UpdateRequest replaces the editable fields of a donation request.
// The requester email is not editable.
type UpdateRequest struct {
	RequesterName string `json:"requesterName" binding:"required,max=100"`
	RecipientName string `json:"recipientName" binding:"required,max=100"`
	BloodGroup    string `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District      string `json:"district" binding:"required,max=100"`
	Upazila       string `json:"upazila" binding:"required,max=100"`
	Hospital      string `json:"hospital" binding:"required,max=200"`
	Address       string `json:"address" binding:"required,max=300"`
	DonationDate  string `json:"donationDate" binding:"required,max=32"`
	DonationTime  string `json:"donationTime" binding:"required,max=32"`
	Message       string `json:"message" binding:"omitempty,max=1000"`
	Status        Status `json:"status" binding:"omitempty,oneof=pending inprogress done canceled"`
}

// FilterParams narrows a request listing. Nil fields do not filter.
type FilterParams struct {
	RequesterEmail *string
}
