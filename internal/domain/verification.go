package domain

import "time"

type VerificationRequestStatus string

const (
	VerificationRequestStatusPending  VerificationRequestStatus = "PENDING"
	VerificationRequestStatusApproved VerificationRequestStatus = "APPROVED"
	VerificationRequestStatusRejected VerificationRequestStatus = "REJECTED"
)

// VerificationRequest is a user's pending request to join a church.
// At most one request exists per (user, church) pair.
type VerificationRequest struct {
	ID        int32                     `json:"id"`
	UserID    int32                     `json:"user_id"`
	ChurchID  int32                     `json:"church_id"`
	Status    VerificationRequestStatus `json:"status"`
	Notes     string                    `json:"notes"`
	CreatedOn time.Time                 `json:"created_on"`
	UpdatedOn time.Time                 `json:"updated_on"`
}

// MemberVerification records one verified member vouching for one join
// request. A verifier may vouch for a given request at most once; the
// distinct-verifier count is what is compared against the church quorum.
type MemberVerification struct {
	ID         int32     `json:"id"`
	RequestID  int32     `json:"request_id"`
	VerifierID int32     `json:"verifier_id"`
	CreatedOn  time.Time `json:"created_on"`
}

type VerificationProgress struct {
	CurrentVerifications  int32    `json:"current_verifications"`
	RequiredVerifications int32    `json:"required_verifications"`
	VerifierNames         []string `json:"verifier_names"`
}
