package models

import (
	"time"
)

// CommunityReport is a user-submitted observation about a resource.
// Reports start pending and move one-directionally through review;
// they are inputs to the concern aggregator and never drive resource
// fields directly.
type CommunityReport struct {
	CreatedAt  time.Time    `json:"createdAt"`
	Kind       ReportKind   `json:"kind"`
	Status     ReportStatus `json:"status"`
	Details    *string      `json:"details,omitempty"`
	AdminNotes *string      `json:"adminNotes,omitempty"`
	ReviewedAt *time.Time   `json:"reviewedAt,omitempty"`
	ReportedBy *int64       `json:"reportedBy,omitempty"`
	ReviewedBy *int64       `json:"reviewedBy,omitempty"`
	ID         int64        `json:"id"`
	ResourceID int64        `json:"resourceId"`
}
