package domain

import "time"

type MessageStatus string

const (
	MessageStatusDraft     MessageStatus = "DRAFT"
	MessageStatusScheduled MessageStatus = "SCHEDULED"
	MessageStatusPublished MessageStatus = "PUBLISHED"
	MessageStatusExpired   MessageStatus = "EXPIRED"
	MessageStatusArchived  MessageStatus = "ARCHIVED"
)

type MessageType string

const (
	MessageTypeChurchPost MessageType = "CHURCH_POST"
	MessageTypeUserShare  MessageType = "USER_SHARE"
)

// MessageLifetime is how long a published message stays visible.
const MessageLifetime = 24 * time.Hour

// MaxConcurrentDrafts caps messages in DRAFT or SCHEDULED per church.
const MaxConcurrentDrafts = 5

type Message struct {
	ID               int32            `json:"id"`
	ChurchID         int32            `json:"church_id"`
	AuthorID         int32            `json:"author_id"`
	Type             MessageType      `json:"type"`
	Title            string           `json:"title"`
	Body             string           `json:"body"`
	Status           MessageStatus    `json:"status"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	ScheduledFor     *time.Time       `json:"scheduled_for,omitempty"`
	PublishedAt      *time.Time       `json:"published_at,omitempty"`
	ExpiresAt        *time.Time       `json:"expires_at,omitempty"`
	CreatedOn        time.Time        `json:"created_on"`
	UpdatedOn        time.Time        `json:"updated_on"`
}

// EffectiveStatus resolves the read-time status: a PUBLISHED message
// past its deadline reads as EXPIRED even before the sweep has flipped
// the stored column.
func (m *Message) EffectiveStatus(now time.Time) MessageStatus {
	if m.Status == MessageStatusPublished && m.ExpiresAt != nil && now.After(*m.ExpiresAt) {
		return MessageStatusExpired
	}
	return m.Status
}
