package models

import (
	"time"
)

// VerificationEvent records one check of a resource's accuracy. Events
// are immutable and append-only per resource; they feed the read-side
// trust scorer and never overwrite resource state beyond the summary
// fields written alongside the insert.
type VerificationEvent struct {
	VerifiedAt      time.Time          `json:"verifiedAt"`
	Method          VerificationMethod `json:"method"`
	Notes           *string            `json:"notes,omitempty"`
	// PriorSnapshot optionally captures the resource's field values
	// before this verification, as JSON, for audit/diff.
	PriorSnapshot   []byte             `json:"priorSnapshot,omitempty"`
	VerifiedBy      *int64             `json:"verifiedBy,omitempty"`
	ID              int64              `json:"id"`
	ResourceID      int64              `json:"resourceId"`
	ConfidenceScore int                `json:"confidenceScore"`
}
