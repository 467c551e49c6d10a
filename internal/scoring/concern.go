package scoring

import (
	"time"

	"github.com/northwoods-housing/compass/api/internal/models"
)

// concernKinds are the report kinds that signal something is wrong with
// a resource, as opposed to neutral updates like changed hours.
var concernKinds = map[models.ReportKind]bool{
	models.ReportClosed:        true,
	models.ReportSafetyConcern: true,
	models.ReportNotHelpful:    true,
}

// ConcernSummary is the aggregated concern state for one resource.
type ConcernSummary struct {
	// LastReportedAt is the creation time of the most recent qualifying
	// report, nil when none qualify.
	LastReportedAt *time.Time
	// Count is the number of qualifying reports.
	Count int
	// Concerning is true when Count meets the policy minimum.
	Concerning bool
}

// AggregateConcerns folds a resource's community reports into a concern
// flag. A report qualifies when it is still pending, of a concerning
// kind, and created inside the concern window. The aggregator never
// touches report status; review transitions belong to the moderation
// workflow.
func AggregateConcerns(now time.Time, reports []models.CommunityReport, p Policy) ConcernSummary {
	cutoff := now.Add(-p.ConcernWindow())

	var summary ConcernSummary
	for i := range reports {
		r := &reports[i]
		if r.Status != models.StatusPending {
			continue
		}
		if !concernKinds[r.Kind] {
			continue
		}
		if !r.CreatedAt.After(cutoff) || r.CreatedAt.After(now) {
			continue
		}

		summary.Count++
		if summary.LastReportedAt == nil || r.CreatedAt.After(*summary.LastReportedAt) {
			t := r.CreatedAt
			summary.LastReportedAt = &t
		}
	}

	summary.Concerning = summary.Count >= p.ConcernMinReports
	return summary
}
