package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusClaimed   ItemStatus = "CLAIMED"
	ItemStatusCompleted ItemStatus = "COMPLETED"
)

type ModerationStatus string

const (
	ModerationStatusPending      ModerationStatus = "PENDING"
	ModerationStatusApproved     ModerationStatus = "APPROVED"
	ModerationStatusRejected     ModerationStatus = "REJECTED"
	ModerationStatusAutoApproved ModerationStatus = "AUTO_APPROVED"
)

// Item is a donated good offered to a church. ClaimerID references the
// claiming church's lead-contact user, not the church row itself.
// ClaimerID is non-nil exactly when Status is CLAIMED.
type Item struct {
	ID               int32            `json:"id"`
	ChurchID         int32            `json:"church_id"`
	DonorID          int32            `json:"donor_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	Status           ItemStatus       `json:"status"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	ClaimerID        *int32           `json:"claimer_id,omitempty"`
	ClaimedAt        *time.Time       `json:"claimed_at,omitempty"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	OfferToMembers   bool             `json:"offer_to_members"`
	CreatedOn        time.Time        `json:"created_on"`
	UpdatedOn        time.Time        `json:"updated_on"`
}

type MemberItemRequestStatus string

const (
	MemberItemRequestStatusRequested MemberItemRequestStatus = "REQUESTED"
	MemberItemRequestStatusReceived  MemberItemRequestStatus = "RECEIVED"
	MemberItemRequestStatusExpired   MemberItemRequestStatus = "EXPIRED"
	MemberItemRequestStatusCancelled MemberItemRequestStatus = "CANCELLED"
)

// MemberItemRequestWindow is the lifetime of a member's request for an
// internally offered item.
const MemberItemRequestWindow = 7 * 24 * time.Hour

// MaxActiveMemberItemRequests caps REQUESTED/RECEIVED requests a member
// may hold system-wide.
const MaxActiveMemberItemRequests = 3

type MemberItemRequest struct {
	ID          int32                   `json:"id"`
	ItemID      int32                   `json:"item_id"`
	MemberID    int32                   `json:"member_id"`
	Status      MemberItemRequestStatus `json:"status"`
	Note        string                  `json:"note"`
	RequestedAt time.Time               `json:"requested_at"`
	ExpiresAt   time.Time               `json:"expires_at"`
	UpdatedOn   time.Time               `json:"updated_on"`
}

// Active reports whether the request still counts against the member's
// concurrent-request cap.
func (r *MemberItemRequest) Active() bool {
	return r.Status == MemberItemRequestStatusRequested || r.Status == MemberItemRequestStatusReceived
}
