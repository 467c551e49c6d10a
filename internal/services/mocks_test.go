package services

import (
	"context"
	"time"

	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/repository"
	"github.com/stretchr/testify/mock"
)

// mockResourceRepository is a testify mock of repository.ResourceRepository.
type mockResourceRepository struct {
	mock.Mock
}

func (m *mockResourceRepository) Create(ctx context.Context, r *models.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceRepository) Update(ctx context.Context, r *models.Resource) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

func (m *mockResourceRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockResourceRepository) FindWithin(ctx context.Context, lat, lng, radiusMiles float64, q repository.ResourceQuery) ([]repository.ResourceWithDistance, error) {
	args := m.Called(ctx, lat, lng, radiusMiles, q)
	if r := args.Get(0); r != nil {
		return r.([]repository.ResourceWithDistance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceRepository) ListActive(ctx context.Context, q repository.ResourceQuery) ([]models.Resource, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]models.Resource, error) {
	args := m.Called(ctx, cutoff, limit)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceRepository) ListCounties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockVerificationRepository is a testify mock of repository.VerificationRepository.
type mockVerificationRepository struct {
	mock.Mock
}

func (m *mockVerificationRepository) Append(ctx context.Context, ev *models.VerificationEvent, newConfidence int, source *string) (bool, error) {
	args := m.Called(ctx, ev, newConfidence, source)
	return args.Bool(0), args.Error(1)
}

func (m *mockVerificationRepository) ListByResource(ctx context.Context, resourceID int64) ([]models.VerificationEvent, error) {
	args := m.Called(ctx, resourceID)
	if r := args.Get(0); r != nil {
		return r.([]models.VerificationEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVerificationRepository) ListSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.VerificationEvent, error) {
	args := m.Called(ctx, resourceIDs, since)
	if r := args.Get(0); r != nil {
		return r.(map[int64][]models.VerificationEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockReportRepository is a testify mock of repository.ReportRepository.
type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) Create(ctx context.Context, r *models.CommunityReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReportRepository) GetByID(ctx context.Context, id int64) (*models.CommunityReport, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepository) ListByResource(ctx context.Context, resourceID int64) ([]models.CommunityReport, error) {
	args := m.Called(ctx, resourceID)
	if r := args.Get(0); r != nil {
		return r.([]models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepository) ListPending(ctx context.Context, limit, offset int) ([]models.CommunityReport, error) {
	args := m.Called(ctx, limit, offset)
	if r := args.Get(0); r != nil {
		return r.([]models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepository) ListPendingSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.CommunityReport, error) {
	args := m.Called(ctx, resourceIDs, since)
	if r := args.Get(0); r != nil {
		return r.(map[int64][]models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepository) Transition(ctx context.Context, id int64, from, to models.ReportStatus, reviewerID int64, notes *string) (bool, error) {
	args := m.Called(ctx, id, from, to, reviewerID, notes)
	return args.Bool(0), args.Error(1)
}
