package services

import (
	"time"

	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/scoring"
)

// testNow is the frozen instant all service tests classify against.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testPaging() Paging {
	return Paging{DefaultLimit: 50, MaxLimit: 200}
}

func requesterAt(tier models.AccessTier, userID int64) access.Requester {
	return access.Requester{UserID: &userID, Tier: tier}
}

func strPtr(s string) *string     { return &s }
func f64Ptr(f float64) *float64   { return &f }
func boolPtr(b bool) *bool        { return &b }
func timePtr(t time.Time) *time.Time { return &t }

// makeResource builds a minimal active resource for pipeline tests.
func makeResource(id int64, tier models.AccessTier) models.Resource {
	return models.Resource{
		ID:                     id,
		Name:                   "Resource",
		Category:               models.CategoryShelter,
		County:                 "Otsego",
		AccessTier:             tier,
		VerificationConfidence: models.DefaultVerificationConfidence,
		IsActive:               true,
	}
}

// makeEvent builds one verification event with the given age.
func makeEvent(resourceID int64, method models.VerificationMethod, confidence int, age time.Duration) models.VerificationEvent {
	return models.VerificationEvent{
		ResourceID:      resourceID,
		Method:          method,
		ConfidenceScore: confidence,
		VerifiedAt:      testNow.Add(-age),
	}
}

// makePendingReport builds one pending report with the given age.
func makePendingReport(id, resourceID int64, kind models.ReportKind, age time.Duration) models.CommunityReport {
	return models.CommunityReport{
		ID:         id,
		ResourceID: resourceID,
		Kind:       kind,
		Status:     models.StatusPending,
		CreatedAt:  testNow.Add(-age),
	}
}

func newDiscoveryForTest(resources *mockResourceRepository, events *mockVerificationRepository, reports *mockReportRepository) *discoveryService {
	return &discoveryService{
		resources: resources,
		events:    events,
		reports:   reports,
		policy:    scoring.DefaultPolicy(),
		paging:    testPaging(),
		now:       func() time.Time { return testNow },
	}
}

func newResourceServiceForTest(resources *mockResourceRepository, events *mockVerificationRepository, reports *mockReportRepository) *resourceService {
	return &resourceService{
		resources: resources,
		events:    events,
		reports:   reports,
		policy:    scoring.DefaultPolicy(),
		paging:    testPaging(),
		now:       func() time.Time { return testNow },
	}
}
