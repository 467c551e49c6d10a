package models

import (
	"time"
)

// User is a directory account. Authentication and session issuance live
// in the upstream auth collaborator; this model exists for the actor and
// reviewer references on events and reports, and for the access tier
// that governs what a requester may see and do.
type User struct {
	CreatedAt     time.Time  `json:"createdAt"`
	Email         string     `json:"email"`
	AccessTier    AccessTier `json:"accessTier"`
	County        *string    `json:"county,omitempty"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	ID            int64      `json:"id"`
	EmailVerified bool       `json:"emailVerified"`
	IsActive      bool       `json:"isActive"`
}
