package scoring

import (
	"time"
)

// IsStale reports whether a resource needs reverification: it has never
// been verified, or its last verification is older than the horizon.
func IsStale(now time.Time, lastVerifiedAt *time.Time, p Policy) bool {
	if lastVerifiedAt == nil {
		return true
	}
	return lastVerifiedAt.Before(now.Add(-p.Horizon()))
}
