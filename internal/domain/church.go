package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

type Church struct {
	ID                       int32             `json:"id"`
	Name                     string            `json:"name"`
	Description              string            `json:"description"`
	Address                  string            `json:"address"`
	Latitude                 float64           `json:"latitude"`
	Longitude                float64           `json:"longitude"`
	LeadContactID            int32             `json:"lead_contact_id"`
	ApplicationStatus        ApplicationStatus `json:"application_status"`
	RequiresVerification     bool              `json:"requires_verification"`
	MinVerificationsRequired int32             `json:"min_verifications_required"`
	CreatedOn                time.Time         `json:"created_on"`
	UpdatedOn                time.Time         `json:"updated_on"`
}
