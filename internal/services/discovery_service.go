package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/repository"
	"github.com/northwoods-housing/compass/api/internal/scoring"
)

// Paging holds the page-size policy applied to list responses.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// DiscoverRequest carries the caller's discovery constraints. Center and
// RadiusMiles travel together; a request with neither is a plain
// filtered listing with no distances.
type DiscoverRequest struct {
	Center         *models.Point
	RadiusMiles    *float64
	Category       *models.Category
	County         *string
	SeasonalSummer *bool
	SeasonalWinter *bool
	Limit          int
	Offset         int
}

// DiscoverResult is one page of annotated resources. Total counts the
// full filtered set, not the page.
type DiscoverResult struct {
	Items  []AnnotatedResource `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// DiscoveryService runs the discovery pipeline: geographic narrowing,
// access filtering, attribute filtering, annotation, ordering, and
// pagination, in that order.
type DiscoveryService interface {
	Discover(ctx context.Context, requester access.Requester, req DiscoverRequest) (*DiscoverResult, error)
}

type discoveryService struct {
	resources repository.ResourceRepository
	events    repository.VerificationRepository
	reports   repository.ReportRepository
	policy    scoring.Policy
	paging    Paging
	now       func() time.Time
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(
	resources repository.ResourceRepository,
	events repository.VerificationRepository,
	reports repository.ReportRepository,
	policy scoring.Policy,
	paging Paging,
) DiscoveryService {
	return &discoveryService{
		resources: resources,
		events:    events,
		reports:   reports,
		policy:    policy,
		paging:    paging,
		now:       time.Now,
	}
}

// candidate is a resource flowing through the pipeline, with its
// distance when the request was geographic.
type candidate struct {
	resource      models.Resource
	distanceMiles *float64
}

// Discover evaluates one discovery request. The timestamp is sampled
// once at the start so every stage classifies against the same instant.
func (s *discoveryService) Discover(ctx context.Context, requester access.Requester, req DiscoverRequest) (*DiscoverResult, error) {
	if err := validateDiscoverRequest(req); err != nil {
		return nil, err
	}
	now := s.now()

	geographic := req.Center != nil

	candidates, err := s.loadCandidates(ctx, req)
	if err != nil {
		return nil, unavailable(err)
	}

	candidates = filterVisible(candidates, requester.Tier)
	candidates = filterAttributes(candidates, req)

	items, err := s.annotateAll(ctx, now, candidates, requester.Tier)
	if err != nil {
		return nil, unavailable(err)
	}

	sortAnnotated(items, geographic)

	total := len(items)
	limit := clampLimit(req.Limit, s.paging)
	items = paginate(items, limit, req.Offset)

	return &DiscoverResult{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

// validateDiscoverRequest rejects malformed requests before any storage
// round trip.
func validateDiscoverRequest(req DiscoverRequest) error {
	if req.Center != nil {
		if !req.Center.Valid() {
			return ErrInvalidGeometry
		}
		if req.RadiusMiles == nil || *req.RadiusMiles <= 0 {
			return ErrInvalidGeometry
		}
	} else if req.RadiusMiles != nil {
		return ErrInvalidGeometry
	}

	if req.Category != nil && !req.Category.Valid() {
		return ErrInvalidInput
	}
	if req.Offset < 0 {
		return ErrInvalidInput
	}

	return nil
}

// loadCandidates narrows the candidate set in storage. Category and
// county filters are pushed down for index use; the pure filter stages
// re-apply them so the pipeline's behavior never depends on what the
// push-down happened to catch.
func (s *discoveryService) loadCandidates(ctx context.Context, req DiscoverRequest) ([]candidate, error) {
	q := repository.ResourceQuery{
		Category: req.Category,
		County:   req.County,
	}

	if req.Center != nil {
		within, err := s.resources.FindWithin(ctx, req.Center.Lat, req.Center.Lng, *req.RadiusMiles, q)
		if err != nil {
			return nil, err
		}
		candidates := make([]candidate, 0, len(within))
		for i := range within {
			d := within[i].DistanceMiles
			candidates = append(candidates, candidate{
				resource:      within[i].Resource,
				distanceMiles: &d,
			})
		}
		return candidates, nil
	}

	active, err := s.resources.ListActive(ctx, q)
	if err != nil {
		return nil, err
	}
	candidates := make([]candidate, 0, len(active))
	for i := range active {
		candidates = append(candidates, candidate{resource: active[i]})
	}
	return candidates, nil
}

// filterVisible drops resources above the requester's tier. Invisible
// resources simply vanish from results; they are never distinguishable
// from resources that do not exist.
func filterVisible(candidates []candidate, tier models.AccessTier) []candidate {
	kept := candidates[:0]
	for _, c := range candidates {
		if tier.AtLeast(c.resource.AccessTier) {
			kept = append(kept, c)
		}
	}
	return kept
}

// filterAttributes applies the non-geographic field filters.
func filterAttributes(candidates []candidate, req DiscoverRequest) []candidate {
	kept := candidates[:0]
	for _, c := range candidates {
		r := &c.resource
		if req.Category != nil && r.Category != *req.Category {
			continue
		}
		if req.County != nil && !strings.Contains(strings.ToLower(r.County), strings.ToLower(*req.County)) {
			continue
		}
		if req.SeasonalSummer != nil && r.SeasonalSummer != *req.SeasonalSummer {
			continue
		}
		if req.SeasonalWinter != nil && r.SeasonalWinter != *req.SeasonalWinter {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// annotateAll batch-loads the recent event and report history for the
// surviving candidates and folds each into its annotated, redacted form.
func (s *discoveryService) annotateAll(ctx context.Context, now time.Time, candidates []candidate, tier models.AccessTier) ([]AnnotatedResource, error) {
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.resource.ID)
	}

	eventsByID, err := s.events.ListSince(ctx, ids, now.Add(-s.policy.Horizon()))
	if err != nil {
		return nil, err
	}
	reportsByID, err := s.reports.ListPendingSince(ctx, ids, now.Add(-s.policy.ConcernWindow()))
	if err != nil {
		return nil, err
	}

	items := make([]AnnotatedResource, 0, len(candidates))
	for _, c := range candidates {
		annotated := annotateResource(
			now,
			access.Redact(c.resource, tier),
			c.distanceMiles,
			eventsByID[c.resource.ID],
			reportsByID[c.resource.ID],
			s.policy,
		)
		items = append(items, annotated)
	}
	return items, nil
}

// sortAnnotated orders results deterministically: geographic requests by
// ascending distance, listings by most recently verified with
// never-verified resources last. The resource id is always the final
// tie-break so equal keys still order identically across requests.
func sortAnnotated(items []AnnotatedResource, geographic bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]

		if geographic {
			if *a.DistanceMiles != *b.DistanceMiles {
				return *a.DistanceMiles < *b.DistanceMiles
			}
		} else {
			av, bv := a.Resource.LastVerifiedAt, b.Resource.LastVerifiedAt
			switch {
			case av != nil && bv != nil && !av.Equal(*bv):
				return av.After(*bv)
			case av != nil && bv == nil:
				return true
			case av == nil && bv != nil:
				return false
			}
		}

		return a.Resource.ID < b.Resource.ID
	})
}

// clampLimit applies the page-size policy: non-positive means the
// default, anything above the maximum is capped.
func clampLimit(limit int, paging Paging) int {
	if limit <= 0 {
		return paging.DefaultLimit
	}
	if limit > paging.MaxLimit {
		return paging.MaxLimit
	}
	return limit
}

// paginate slices one page out of the ordered results. An offset past
// the end yields an empty page, not an error.
func paginate(items []AnnotatedResource, limit, offset int) []AnnotatedResource {
	if offset >= len(items) {
		return []AnnotatedResource{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
