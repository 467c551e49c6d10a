package services

import (
	"time"

	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/scoring"
)

// AnnotatedResource pairs a resource with the read-time classifications
// derived from its verification and report history. The annotations are
// never stored; they are recomputed on every read so advancing time
// alone can change them.
type AnnotatedResource struct {
	Resource      models.Resource `json:"resource"`
	DistanceMiles *float64        `json:"distanceMiles,omitempty"`
	LastConcernAt *time.Time      `json:"lastConcernAt,omitempty"`
	Confidence    int             `json:"confidence"`
	ConcernCount  int             `json:"concernCount"`
	Stale         bool            `json:"stale"`
	Trusted       bool            `json:"trusted"`
	Concerning    bool            `json:"concerning"`
}

// annotateResource folds one resource's recent events and pending
// reports into its annotated form. Pure: the same inputs always produce
// the same annotation.
func annotateResource(
	now time.Time,
	r models.Resource,
	distanceMiles *float64,
	events []models.VerificationEvent,
	reports []models.CommunityReport,
	policy scoring.Policy,
) AnnotatedResource {
	concerns := scoring.AggregateConcerns(now, reports, policy)

	return AnnotatedResource{
		Resource:      r,
		DistanceMiles: distanceMiles,
		Confidence:    scoring.Confidence(now, events, r.VerificationConfidence, policy),
		Stale:         scoring.IsStale(now, r.LastVerifiedAt, policy),
		Trusted:       scoring.IsTrusted(now, events, policy),
		Concerning:    concerns.Concerning,
		ConcernCount:  concerns.Count,
		LastConcernAt: concerns.LastReportedAt,
	}
}
