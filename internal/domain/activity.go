package domain

import "time"

// ActivityLog is an append-only audit record of a state transition.
type ActivityLog struct {
	ID         int32     `json:"id"`
	ActorID    int32     `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int32     `json:"entity_id"`
	Detail     string    `json:"detail"`
	CreatedOn  time.Time `json:"created_on"`
}
