package services

import (
	"errors"
)

// Service-level errors. Handlers map these onto HTTP status codes; the
// services themselves never see the transport.
var (
	// ErrInvalidGeometry rejects malformed coordinates or a negative
	// radius before any storage query runs.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidInput rejects enum values or fields outside their
	// documented ranges.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResourceNotFound covers absent, soft-deleted, and
	// tier-invisible resources alike, so existence is never leaked.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrReportNotFound is returned when a community report id is absent.
	ErrReportNotFound = errors.New("report not found")

	// ErrAccessDenied is returned when the requester's tier is
	// insufficient for a write action.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned when a report status change is
	// attempted from a non-pending or terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnavailable wraps storage collaborator failures. Discovery and
	// event appends are safe to retry; report transitions are not, the
	// caller must re-read first.
	ErrUnavailable = errors.New("storage unavailable")
)

// unavailable wraps a storage failure so handlers can map it to 503
// while the underlying cause still reaches the logs.
func unavailable(err error) error {
	return errors.Join(ErrUnavailable, err)
}
