package access

import (
	"github.com/northwoods-housing/compass/api/internal/models"
)

// Requester identifies who is making a request. The tier comes from the
// upstream auth collaborator via trusted headers; an unauthenticated
// requester is always tier public, never inferred from anything else.
type Requester struct {
	UserID *int64
	Tier   models.AccessTier
}

// Anonymous returns the requester used when no auth context is present.
func Anonymous() Requester {
	return Requester{Tier: models.TierPublic}
}

// Visible reports whether a requester at the given tier may see the
// resource at all. The rule is monotonic: resource.AccessTier <= tier
// under the total order public < verified_user < trusted_verifier < admin.
func Visible(resource *models.Resource, tier models.AccessTier) bool {
	if resource == nil {
		return false
	}
	return tier.AtLeast(resource.AccessTier)
}

// Redact strips fields that are irrelevant below trusted_verifier from a
// copy of the resource. This is a projection, not an error: the caller
// still receives the resource, minus internal verification bookkeeping.
func Redact(resource models.Resource, tier models.AccessTier) models.Resource {
	if tier.AtLeast(models.TierTrustedVerifier) {
		return resource
	}
	resource.VerificationSource = nil
	resource.CreatedBy = nil
	return resource
}

// RedactReport strips reviewer bookkeeping from a report for requesters
// below admin.
func RedactReport(report models.CommunityReport, tier models.AccessTier) models.CommunityReport {
	if tier.AtLeast(models.TierAdmin) {
		return report
	}
	report.AdminNotes = nil
	report.ReviewedBy = nil
	return report
}

// Write-privilege policy. Tier cut-offs are policy, not physics, so they
// live here in one place.
const (
	createTier = models.TierVerifiedUser
	updateTier = models.TierVerifiedUser
	deleteTier = models.TierAdmin
	verifyTier = models.TierTrustedVerifier
	reportTier = models.TierVerifiedUser
	reviewTier = models.TierAdmin
	staleTier  = models.TierTrustedVerifier
)

// CanCreate reports whether the requester may create resources.
func (r Requester) CanCreate() bool { return r.Tier.AtLeast(createTier) }

// CanUpdate reports whether the requester may edit resources.
func (r Requester) CanUpdate() bool { return r.Tier.AtLeast(updateTier) }

// CanDelete reports whether the requester may soft-delete resources.
func (r Requester) CanDelete() bool { return r.Tier.AtLeast(deleteTier) }

// CanVerify reports whether the requester may record verification events
// and read per-resource verification history.
func (r Requester) CanVerify() bool { return r.Tier.AtLeast(verifyTier) }

// CanReport reports whether the requester may submit community reports.
func (r Requester) CanReport() bool { return r.Tier.AtLeast(reportTier) }

// CanReview reports whether the requester may review community reports.
func (r Requester) CanReview() bool { return r.Tier.AtLeast(reviewTier) }

// CanViewStaleQueue reports whether the requester may read the
// reverification remediation queue.
func (r Requester) CanViewStaleQueue() bool { return r.Tier.AtLeast(staleTier) }
