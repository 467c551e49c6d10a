// Package scoring derives trust, staleness, and concern classifications
// for a resource from its verification and report history. Everything
// here is a pure function of (now, loaded rows, policy): nothing is
// cached, nothing is mutated, and identical inputs always classify
// identically.
package scoring

import (
	"time"

	"github.com/northwoods-housing/compass/api/internal/models"
)

// Policy holds the classification thresholds. These are product policy,
// not physics, so they are configuration rather than literals in the
// fold logic.
type Policy struct {
	// HorizonDays is the recency window beyond which verification
	// evidence is discounted to zero for staleness and trust.
	HorizonDays int
	// ConcernWindowDays is the recency window for pending negative
	// reports to count toward the concern flag.
	ConcernWindowDays int
	// TrustedMinEvents is the minimum number of in-horizon verification
	// events for a resource to qualify as trusted.
	TrustedMinEvents int
	// TrustedMinConfidence is the minimum average confidence of those
	// events for a resource to qualify as trusted.
	TrustedMinConfidence int
	// ConcernMinReports is the minimum count of qualifying pending
	// reports for a resource to be flagged concerning.
	ConcernMinReports int
}

// Default thresholds, matching the directory's long-standing policy.
const (
	DefaultHorizonDays          = 90
	DefaultConcernWindowDays    = 30
	DefaultTrustedMinEvents     = 2
	DefaultTrustedMinConfidence = 70
	DefaultConcernMinReports    = 2
)

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		HorizonDays:          DefaultHorizonDays,
		ConcernWindowDays:    DefaultConcernWindowDays,
		TrustedMinEvents:     DefaultTrustedMinEvents,
		TrustedMinConfidence: DefaultTrustedMinConfidence,
		ConcernMinReports:    DefaultConcernMinReports,
	}
}

// Horizon returns the verification horizon as a duration.
func (p Policy) Horizon() time.Duration {
	return time.Duration(p.HorizonDays) * 24 * time.Hour
}

// ConcernWindow returns the concern recency window as a duration.
func (p Policy) ConcernWindow() time.Duration {
	return time.Duration(p.ConcernWindowDays) * 24 * time.Hour
}

// Method floors: the minimum displayed confidence carried by the
// strongest verification method seen inside the horizon. Partner and
// physical-visit checks carry more weight than automated web checks.
const (
	floorPartnerVerified = 65
	floorManualPhysical  = 60
	floorManualPhone     = 40
	floorCommunityReport = 30
	floorAutomatedWeb    = 20
)

// methodFloor returns the confidence floor for a verification method.
func methodFloor(m models.VerificationMethod) int {
	switch m {
	case models.MethodPartnerVerified:
		return floorPartnerVerified
	case models.MethodManualPhysical:
		return floorManualPhysical
	case models.MethodManualPhone:
		return floorManualPhone
	case models.MethodCommunityReport:
		return floorCommunityReport
	case models.MethodAutomatedWeb:
		return floorAutomatedWeb
	}
	return 0
}

// clampConfidence bounds a confidence value to the [0,100] scale.
func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
