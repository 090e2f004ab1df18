package share

import "time"

// Link is a long-lived presigned URL for one object. It is never persisted.
type Link struct {
	ObjectKey string
	URL       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the link is no longer valid at now.
func (l Link) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// TTL is the lifetime the link was issued with.
func (l Link) TTL() time.Duration {
	return l.ExpiresAt.Sub(l.IssuedAt)
}
