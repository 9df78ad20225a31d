package donation

import (
	"time"

	"blad_backend/internal/common"
)

func newRequest(in CreateRequest, now time.Time) *Request {
	return &Request{
		RequesterName:  in.RequesterName,
		RequesterEmail: common.NormalizeEmail(in.RequesterEmail),
		RecipientName:  in.RecipientName,
		BloodGroup:     in.BloodGroup,
		District:       in.District,
		Upazila:        in.Upazila,
		Hospital:       in.Hospital,
		Address:        in.Address,
		DonationDate:   in.DonationDate,
		DonationTime:   in.DonationTime,
		Message:        in.Message,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// applyUpdate copies the editable fields of in onto a copy of existing.
// Identity, requester and creation time are carried over.
func applyUpdate(existing *Request, in UpdateRequest, now time.Time) *Request {
	updated := *existing
	updated.RequesterName = in.RequesterName
	updated.RecipientName = in.RecipientName
	updated.BloodGroup = in.BloodGroup
	updated.District = in.District
	updated.Upazila = in.Upazila
	updated.Hospital = in.Hospital
	updated.Address = in.Address
	updated.DonationDate = in.DonationDate
	updated.DonationTime = in.DonationTime
	updated.Message = in.Message
	if in.Status != "" {
		updated.Status = in.Status
	}
	if updated.Status == "" {
		updated.Status = StatusPending
	}
	updated.UpdatedAt = now
	return &updated
}
