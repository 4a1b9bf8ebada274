package domain

import "time"

// InviteCode is a user's personal referral code. There is no status
// column: an expired code is one whose ExpiresAt has been stamped to a
// past instant; the row itself stays live for analytics.
type InviteCode struct {
	ID            int32      `json:"id"`
	OwnerID       int32      `json:"owner_id"`
	Code          string     `json:"code"`
	Scans         int32      `json:"scans"`
	LastScannedAt *time.Time `json:"last_scanned_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
}

// Usable reports whether the code can still be redeemed at now.
func (c *InviteCode) Usable(now time.Time) bool {
	return c.ExpiresAt == nil || now.Before(*c.ExpiresAt)
}
