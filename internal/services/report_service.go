package services

import (
	"context"
	"fmt"

	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/repository"
)

// ReportInput carries one community report submission.
type ReportInput struct {
	Kind    models.ReportKind
	Details *string
}

// ReviewInput carries a moderation decision on a report.
type ReviewInput struct {
	Status     models.ReportStatus
	AdminNotes *string
}

// ReportService owns the community report lifecycle: submission, the
// review queue, and the guarded status transitions.
type ReportService interface {
	Submit(ctx context.Context, requester access.Requester, resourceID int64, input ReportInput) (*models.CommunityReport, error)
	Review(ctx context.Context, requester access.Requester, reportID int64, input ReviewInput) (*models.CommunityReport, error)
	Pending(ctx context.Context, requester access.Requester, limit, offset int) ([]models.CommunityReport, error)
}

type reportService struct {
	reports   repository.ReportRepository
	resources repository.ResourceRepository
	paging    Paging
}

// NewReportService creates a new ReportService.
func NewReportService(
	reports repository.ReportRepository,
	resources repository.ResourceRepository,
	paging Paging,
) ReportService {
	return &reportService{
		reports:   reports,
		resources: resources,
		paging:    paging,
	}
}

// Submit files a new pending report against a resource the requester
// can see. Reports never mutate the resource; they only feed the
// concern aggregation on reads.
func (s *reportService) Submit(ctx context.Context, requester access.Requester, resourceID int64, input ReportInput) (*models.CommunityReport, error) {
	if !requester.CanReport() {
		return nil, ErrAccessDenied
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, input.Kind)
	}

	r, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, unavailable(err)
	}
	if !access.Visible(r, requester.Tier) {
		return nil, ErrResourceNotFound
	}

	report := &models.CommunityReport{
		ResourceID: resourceID,
		ReportedBy: requester.UserID,
		Kind:       input.Kind,
		Details:    input.Details,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, unavailable(err)
	}

	redacted := access.RedactReport(*report, requester.Tier)
	return &redacted, nil
}

// Review applies one moderation transition. The status change is
// guarded in storage on the report's current status, so two concurrent
// reviews of the same report cannot both succeed: the loser observes a
// zero-row update and gets ErrInvalidTransition.
func (s *reportService) Review(ctx context.Context, requester access.Requester, reportID int64, input ReviewInput) (*models.CommunityReport, error) {
	if !requester.CanReview() {
		return nil, ErrAccessDenied
	}
	if requester.UserID == nil {
		return nil, fmt.Errorf("%w: reviewer identity is required", ErrInvalidInput)
	}
	if !input.Status.Valid() || input.Status == models.StatusPending {
		return nil, fmt.Errorf("%w: invalid target status %q", ErrInvalidInput, input.Status)
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, unavailable(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if !report.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, report.Status, input.Status)
	}

	ok, err := s.reports.Transition(ctx, reportID, report.Status, input.Status, *requester.UserID, input.AdminNotes)
	if err != nil {
		return nil, unavailable(err)
	}
	if !ok {
		// Raced with another review between the read and the guarded
		// update. Distinguish a vanished report from a changed status.
		current, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return nil, unavailable(err)
		}
		if current == nil {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, input.Status)
	}

	updated, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, unavailable(err)
	}
	if updated == nil {
		return nil, ErrReportNotFound
	}

	redacted := access.RedactReport(*updated, requester.Tier)
	return &redacted, nil
}

// Pending returns the review queue in arrival order.
func (s *reportService) Pending(ctx context.Context, requester access.Requester, limit, offset int) ([]models.CommunityReport, error) {
	if !requester.CanReview() {
		return nil, ErrAccessDenied
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", ErrInvalidInput)
	}

	reports, err := s.reports.ListPending(ctx, clampLimit(limit, s.paging), offset)
	if err != nil {
		return nil, unavailable(err)
	}
	return reports, nil
}
