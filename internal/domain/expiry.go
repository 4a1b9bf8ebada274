package domain

import "time"

// IsExpired is the single expiry predicate used by every read boundary
// and sweep. Deadlines are exclusive: an entity expires strictly after
// its ExpiresAt instant passes.
func IsExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// SweepResult reports one bulk expiry pass. A zero-match sweep is a
// success with Count 0.
type SweepResult struct {
	Entity   string  `json:"entity"`
	Count    int32   `json:"count"`
	Affected []int32 `json:"affected"`
}
