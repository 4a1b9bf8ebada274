package domain

import "time"

type UserRole string

const (
	UserRoleUser   UserRole = "USER"
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleChurch UserRole = "CHURCH"
)

type MembershipStatus string

const (
	MembershipStatusNone      MembershipStatus = "NONE"
	MembershipStatusRequested MembershipStatus = "REQUESTED"
	MembershipStatusVerified  MembershipStatus = "VERIFIED"
)

type User struct {
	ID               int32            `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	Name             string           `json:"name"`
	Role             UserRole         `json:"role"`
	ChurchID         *int32           `json:"church_id"`
	MembershipStatus MembershipStatus `json:"church_membership_status"`
	VerifiedAt       *time.Time       `json:"verified_at,omitempty"`
	JoinRequestedAt  *time.Time       `json:"church_join_requested_at,omitempty"`
	InviterID        *int32           `json:"inviter_id,omitempty"`
	InvitesCompleted int32            `json:"user_invites_completed"`
	Disabled         bool             `json:"disabled"`
	DeviceToken      string           `json:"-"`
	CreatedOn        time.Time        `json:"created_on"`
	UpdatedOn        time.Time        `json:"updated_on"`
}

// MinVerifierTenure is how long a member must have been verified before
// they may vouch for join requesters. Prevents freshly approved members
// from immediately forming verification rings.
const MinVerifierTenure = 7 * 24 * time.Hour

// CanVerify reports whether the user is allowed to vouch for join
// requesters of their church at the given instant.
func (u *User) CanVerify(now time.Time) bool {
	if u.MembershipStatus != MembershipStatusVerified || u.VerifiedAt == nil {
		return false
	}
	return now.Sub(*u.VerifiedAt) >= MinVerifierTenure
}
