package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "PENDING"
	InvitationStatusClaimed   InvitationStatus = "CLAIMED"
	InvitationStatusExpired   InvitationStatus = "EXPIRED"
	InvitationStatusCancelled InvitationStatus = "CANCELLED"
)

// ChurchInvitationWindow is the lifetime of a church invitation; a
// resend resets the deadline to now plus this window.
const ChurchInvitationWindow = 7 * 24 * time.Hour

// ChurchInvitation invites a prospective church by email. The token is
// presented back when the church registers.
type ChurchInvitation struct {
	ID         int32            `json:"id"`
	Email      string           `json:"email"`
	ChurchName string           `json:"church_name"`
	Token      string           `json:"token"`
	InvitedBy  int32            `json:"invited_by"`
	Status     InvitationStatus `json:"status"`
	ExpiresAt  time.Time        `json:"expires_at"`
	ClaimedBy  *int32           `json:"claimed_by,omitempty"`
	ClaimedAt  *time.Time       `json:"claimed_at,omitempty"`
	CreatedOn  time.Time        `json:"created_on"`
	UpdatedOn  time.Time        `json:"updated_on"`
}

// InvitationAnalytics carries per-invitation delivery counters. All
// increments happen in SQL, never read-modify-write.
type InvitationAnalytics struct {
	InvitationID int32 `json:"invitation_id"`
	SentCount    int32 `json:"sent_count"`
	ResendCount  int32 `json:"resend_count"`
	ScanCount    int32 `json:"scan_count"`
}
