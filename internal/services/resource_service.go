package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/repository"
	"github.com/northwoods-housing/compass/api/internal/scoring"
)

// CreateResourceInput carries the fields accepted on resource creation.
type CreateResourceInput struct {
	Name                  string
	Category              models.Category
	County                string
	AccessTier            models.AccessTier
	Description           *string
	Address               *string
	Town                  *string
	Phone                 *string
	Email                 *string
	Website               *string
	HoursOfOperation      *string
	Restrictions          *string
	CostInfo              *string
	Location              *models.Point
	Capacity              *int
	LanguagesSupported    []string
	DumpStationFee        *float64
	PropanePricePerGallon *float64
	CampingNightlyRate    *float64
	SeasonalSummer        bool
	SeasonalWinter        bool
}

// UpdateResourceInput carries a partial resource edit. Nil fields are
// left unchanged; clearing a field to empty requires sending an empty
// value, not omitting it.
type UpdateResourceInput struct {
	Name                  *string
	Description           *string
	Address               *string
	Town                  *string
	Phone                 *string
	Email                 *string
	Website               *string
	HoursOfOperation      *string
	Restrictions          *string
	CostInfo              *string
	Location              *models.Point
	Capacity              *int
	LanguagesSupported    []string
	DumpStationFee        *float64
	PropanePricePerGallon *float64
	CampingNightlyRate    *float64
	SeasonalSummer        *bool
	SeasonalWinter        *bool
}

// VerificationInput carries one verification event submission.
type VerificationInput struct {
	Method          models.VerificationMethod
	ConfidenceScore int
	Notes           *string
	Source          *string
}

// ResourceService owns the resource lifecycle and the verification
// workflow around it.
type ResourceService interface {
	Create(ctx context.Context, requester access.Requester, input CreateResourceInput) (*models.Resource, error)
	Get(ctx context.Context, requester access.Requester, id int64) (*AnnotatedResource, error)
	Update(ctx context.Context, requester access.Requester, id int64, input UpdateResourceInput) (*models.Resource, error)
	Delete(ctx context.Context, requester access.Requester, id int64) error

	RecordVerification(ctx context.Context, requester access.Requester, resourceID int64, input VerificationInput) (*models.VerificationEvent, error)
	ListVerifications(ctx context.Context, requester access.Requester, resourceID int64) ([]models.VerificationEvent, error)

	ListStale(ctx context.Context, requester access.Requester, limit int) ([]models.Resource, error)
	Counties(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type resourceService struct {
	resources repository.ResourceRepository
	events    repository.VerificationRepository
	reports   repository.ReportRepository
	policy    scoring.Policy
	paging    Paging
	now       func() time.Time
}

// NewResourceService creates a new ResourceService.
func NewResourceService(
	resources repository.ResourceRepository,
	events repository.VerificationRepository,
	reports repository.ReportRepository,
	policy scoring.Policy,
	paging Paging,
) ResourceService {
	return &resourceService{
		resources: resources,
		events:    events,
		reports:   reports,
		policy:    policy,
		paging:    paging,
		now:       time.Now,
	}
}

// Create validates and inserts a new resource. New resources start at
// the default confidence with no verification history, so they surface
// as stale until someone verifies them.
func (s *resourceService) Create(ctx context.Context, requester access.Requester, input CreateResourceInput) (*models.Resource, error) {
	if !requester.CanCreate() {
		return nil, ErrAccessDenied
	}

	if input.Name == "" || input.County == "" {
		return nil, fmt.Errorf("%w: name and county are required", ErrInvalidInput)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}

	tier := input.AccessTier
	if tier == "" {
		tier = models.TierPublic
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown access tier %q", ErrInvalidInput, input.AccessTier)
	}
	// Nobody may place a resource behind a tier they cannot see themselves.
	if !requester.Tier.AtLeast(tier) {
		return nil, ErrAccessDenied
	}

	if input.Location != nil && !input.Location.Valid() {
		return nil, ErrInvalidGeometry
	}

	r := &models.Resource{
		Name:                   input.Name,
		Category:               input.Category,
		County:                 input.County,
		AccessTier:             tier,
		Description:            input.Description,
		Address:                input.Address,
		Town:                   input.Town,
		Phone:                  input.Phone,
		Email:                  input.Email,
		Website:                input.Website,
		HoursOfOperation:       input.HoursOfOperation,
		Restrictions:           input.Restrictions,
		CostInfo:               input.CostInfo,
		Location:               input.Location,
		Capacity:               input.Capacity,
		LanguagesSupported:     input.LanguagesSupported,
		DumpStationFee:         input.DumpStationFee,
		PropanePricePerGallon:  input.PropanePricePerGallon,
		CampingNightlyRate:     input.CampingNightlyRate,
		SeasonalSummer:         input.SeasonalSummer,
		SeasonalWinter:         input.SeasonalWinter,
		VerificationConfidence: models.DefaultVerificationConfidence,
		CreatedBy:              requester.UserID,
	}

	if err := s.resources.Create(ctx, r); err != nil {
		return nil, unavailable(err)
	}

	return r, nil
}

// Get returns one resource with its read-time annotations, redacted for
// the requester's tier. A resource above the requester's tier is
// indistinguishable from one that does not exist.
func (s *resourceService) Get(ctx context.Context, requester access.Requester, id int64) (*AnnotatedResource, error) {
	now := s.now()

	r, err := s.loadVisible(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	eventsByID, err := s.events.ListSince(ctx, []int64{id}, now.Add(-s.policy.Horizon()))
	if err != nil {
		return nil, unavailable(err)
	}
	reportsByID, err := s.reports.ListPendingSince(ctx, []int64{id}, now.Add(-s.policy.ConcernWindow()))
	if err != nil {
		return nil, unavailable(err)
	}

	annotated := annotateResource(
		now,
		access.Redact(*r, requester.Tier),
		nil,
		eventsByID[id],
		reportsByID[id],
		s.policy,
	)
	return &annotated, nil
}

// Update applies a partial edit to a resource. Verification summary
// fields are not editable here; only verification appends touch them.
func (s *resourceService) Update(ctx context.Context, requester access.Requester, id int64, input UpdateResourceInput) (*models.Resource, error) {
	if !requester.CanUpdate() {
		return nil, ErrAccessDenied
	}

	r, err := s.loadVisible(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(r, input)

	if r.Location != nil && !r.Location.Valid() {
		return nil, ErrInvalidGeometry
	}
	if r.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be cleared", ErrInvalidInput)
	}

	ok, err := s.resources.Update(ctx, r)
	if err != nil {
		return nil, unavailable(err)
	}
	if !ok {
		return nil, ErrResourceNotFound
	}

	return r, nil
}

// Delete soft-deletes a resource. The row and its event history remain
// for audit; the resource just stops existing as far as reads go.
func (s *resourceService) Delete(ctx context.Context, requester access.Requester, id int64) error {
	if !requester.CanDelete() {
		return ErrAccessDenied
	}

	ok, err := s.resources.SoftDelete(ctx, id)
	if err != nil {
		return unavailable(err)
	}
	if !ok {
		return ErrResourceNotFound
	}

	return nil
}

// RecordVerification appends one verification event and refreshes the
// resource's stored summary with the recomputed confidence. The event
// timestamp, the decay clock, and the summary refresh all use the same
// sampled instant.
func (s *resourceService) RecordVerification(ctx context.Context, requester access.Requester, resourceID int64, input VerificationInput) (*models.VerificationEvent, error) {
	if !requester.CanVerify() {
		return nil, ErrAccessDenied
	}
	if !input.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown verification method %q", ErrInvalidInput, input.Method)
	}
	if input.ConfidenceScore < 0 || input.ConfidenceScore > 100 {
		return nil, fmt.Errorf("%w: confidence score must be between 0 and 100", ErrInvalidInput)
	}

	now := s.now()

	r, err := s.loadVisible(ctx, requester, resourceID)
	if err != nil {
		return nil, err
	}

	snapshot, err := priorSnapshot(r)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot resource %d: %w", resourceID, err)
	}

	ev := models.VerificationEvent{
		ResourceID:      resourceID,
		VerifiedBy:      requester.UserID,
		Method:          input.Method,
		VerifiedAt:      now,
		Notes:           input.Notes,
		ConfidenceScore: input.ConfidenceScore,
		PriorSnapshot:   snapshot,
	}

	recentByID, err := s.events.ListSince(ctx, []int64{resourceID}, now.Add(-s.policy.Horizon()))
	if err != nil {
		return nil, unavailable(err)
	}
	history := append(recentByID[resourceID], ev)
	newConfidence := scoring.Confidence(now, history, r.VerificationConfidence, s.policy)

	ok, err := s.events.Append(ctx, &ev, newConfidence, input.Source)
	if err != nil {
		return nil, unavailable(err)
	}
	if !ok {
		return nil, ErrResourceNotFound
	}

	return &ev, nil
}

// ListVerifications returns a resource's full event history, most
// recent first.
func (s *resourceService) ListVerifications(ctx context.Context, requester access.Requester, resourceID int64) ([]models.VerificationEvent, error) {
	if !requester.CanVerify() {
		return nil, ErrAccessDenied
	}

	if _, err := s.loadVisible(ctx, requester, resourceID); err != nil {
		return nil, err
	}

	events, err := s.events.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, unavailable(err)
	}
	return events, nil
}

/// ListStale returns the reverification queue: active resources whose
// last verification fell out of the horizon, never-verified first.
func (s *resourceService) ListStale(ctx context.Context, requester access.Requester, limit int) ([]models.Resource, error) {
	if !requester.CanViewStaleQueue() {
		return nil, ErrAccessDenied
	}

	cutoff := s.now().Add(-s.policy.Horizon())
	stale, err := s.resources.ListStale(ctx, cutoff, clampLimit(limit, s.paging))
	if err != nil {
		return nil, unavailable(err)
	}
	return stale, nil
}

// Counties lists the distinct counties of active resources.
func (s *resourceService) Counties(ctx context.Context) ([]string, error) {
	counties, err := s.resources.ListCounties(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return counties, nil
}

// Categories lists the distinct categories of active resources.
func (s *resourceService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.resources.ListCategories(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return categories, nil
}

// loadVisible fetches an active resource the requester may see.
// Missing, soft-deleted, and tier-invisible all collapse to
// ErrResourceNotFound.
func (s *resourceService) loadVisible(ctx context.Context, requester access.Requester, id int64) (*models.Resource, error) {
	r, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, unavailable(err)
	}
	if !access.Visible(r, requester.Tier) {
		return nil, ErrResourceNotFound
	}
	return r, nil
}

// applyUpdate copies the provided fields of a partial edit onto the
// loaded resource.
func applyUpdate(r *models.Resource, input UpdateResourceInput) {
	if input.Name != nil {
		r.Name = *input.Name
	}
	if input.Description != nil {
		r.Description = input.Description
	}
	if input.Address != nil {
		r.Address = input.Address
	}
	if input.Town != nil {
		r.Town = input.Town
	}
	if input.Phone != nil {
		r.Phone = input.Phone
	}
	if input.Email != nil {
		r.Email = input.Email
	}
	if input.Website != nil {
		r.Website = input.Website
	}
	if input.HoursOfOperation != nil {
		r.HoursOfOperation = input.HoursOfOperation
	}
	if input.Restrictions != nil {
		r.Restrictions = input.Restrictions
	}
	if input.CostInfo != nil {
		r.CostInfo = input.CostInfo
	}
	if input.Location != nil {
		r.Location = input.Location
	}
	if input.Capacity != nil {
		r.Capacity = input.Capacity
	}
	if input.LanguagesSupported != nil {
		r.LanguagesSupported = input.LanguagesSupported
	}
	if input.DumpStationFee != nil {
		r.DumpStationFee = input.DumpStationFee
	}
	if input.PropanePricePerGallon != nil {
		r.PropanePricePerGallon = input.PropanePricePerGallon
	}
	if input.CampingNightlyRate != nil {
		r.CampingNightlyRate = input.CampingNightlyRate
	}
	if input.SeasonalSummer != nil {
		r.SeasonalSummer = *input.SeasonalSummer
	}
	if input.SeasonalWinter != nil {
		r.SeasonalWinter = *input.SeasonalWinter
	}
}

// priorSnapshot captures the contact and verification summary fields of
// a resource before a verification, for audit diffing.
func priorSnapshot(r *models.Resource) ([]byte, error) {
	return json.Marshal(map[string]any{
		"name":                   r.Name,
		"address":                r.Address,
		"phone":                  r.Phone,
		"website":                r.Website,
		"hoursOfOperation":       r.HoursOfOperation,
		"lastVerifiedAt":         r.LastVerifiedAt,
		"verificationConfidence": r.VerificationConfidence,
	})
}
