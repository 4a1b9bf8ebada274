package domain

import "time"

type PingStatus string

const (
	PingStatusPending  PingStatus = "PENDING"
	PingStatusAccepted PingStatus = "ACCEPTED"
	PingStatusRejected PingStatus = "REJECTED"
	PingStatusExpired  PingStatus = "EXPIRED"
)

// PingWindow is how long a ping stays answerable.
const PingWindow = 7 * 24 * time.Hour

// Ping is a directed contact request between two users. One row exists
// per ordered (sender, receiver) pair; the reverse direction is an
// independent row. An accepted ping grants bidirectional contact-info
// visibility.
type Ping struct {
	ID         int32      `json:"id"`
	SenderID   int32      `json:"sender_id"`
	ReceiverID int32      `json:"receiver_id"`
	Status     PingStatus `json:"status"`
	Message    string     `json:"message"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}
