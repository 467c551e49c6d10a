package scoring

import (
	"time"

	"github.com/northwoods-housing/compass/api/internal/models"
)

// inHorizon filters events to those verified within the policy horizon
// ending at now. Future-dated events are excluded; the fold only ever
// looks backwards.
func inHorizon(now time.Time, events []models.VerificationEvent, p Policy) []models.VerificationEvent {
	cutoff := now.Add(-p.Horizon())
	kept := make([]models.VerificationEvent, 0, len(events))
	for _, ev := range events {
		if ev.VerifiedAt.After(cutoff) && !ev.VerifiedAt.After(now) {
			kept = append(kept, ev)
		}
	}
	return kept
}

// Confidence computes the displayed 0-100 confidence for a resource from
// its verification history, independent of the stored summary field.
//
// Each in-horizon event contributes its confidence score decayed
// linearly with age: weight 1 at now, falling to 0 at the horizon. The
// displayed value is the maximum of the decayed weighted average and the
// floor of the strongest method seen inside the horizon. With no
// in-horizon events the stored summary confidence is returned unchanged,
// so a never-verified resource shows its default of 50.
func Confidence(now time.Time, events []models.VerificationEvent, storedConfidence int, p Policy) int {
	recent := inHorizon(now, events, p)
	if len(recent) == 0 {
		return clampConfidence(storedConfidence)
	}

	horizon := p.Horizon().Seconds()
	var weightedSum, weightTotal float64
	floor := 0

	for _, ev := range recent {
		age := now.Sub(ev.VerifiedAt).Seconds()
		weight := 1 - age/horizon
		if weight < 0 {
			weight = 0
		}
		weightedSum += float64(clampConfidence(ev.ConfidenceScore)) * weight
		weightTotal += weight

		if f := methodFloor(ev.Method); f > floor {
			floor = f
		}
	}

	decayed := 0
	if weightTotal > 0 {
		decayed = int(weightedSum / weightTotal)
	}

	if floor > decayed {
		return clampConfidence(floor)
	}
	return clampConfidence(decayed)
}

// IsTrusted reports whether the event history qualifies the resource as
// trusted: at least TrustedMinEvents events inside the horizon whose
// plain average confidence meets TrustedMinConfidence. The stored
// summary confidence plays no part; advancing time past the horizon
// reverts the classification.
func IsTrusted(now time.Time, events []models.VerificationEvent, p Policy) bool {
	recent := inHorizon(now, events, p)
	if len(recent) < p.TrustedMinEvents {
		return false
	}

	sum := 0
	for _, ev := range recent {
		sum += clampConfidence(ev.ConfidenceScore)
	}
	avg := float64(sum) / float64(len(recent))

	return avg >= float64(p.TrustedMinConfidence)
}
