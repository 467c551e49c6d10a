package handlers

import (
	"context"

	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/services"
	"github.com/stretchr/testify/mock"
)

// mockDiscoveryService is a testify mock of services.DiscoveryService.
type mockDiscoveryService struct {
	mock.Mock
}

func (m *mockDiscoveryService) Discover(ctx context.Context, requester access.Requester, req services.DiscoverRequest) (*services.DiscoverResult, error) {
	args := m.Called(ctx, requester, req)
	if r := args.Get(0); r != nil {
		return r.(*services.DiscoverResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockResourceService is a testify mock of services.ResourceService.
type mockResourceService struct {
	mock.Mock
}

func (m *mockResourceService) Create(ctx context.Context, requester access.Requester, input services.CreateResourceInput) (*models.Resource, error) {
	args := m.Called(ctx, requester, input)
	if r := args.Get(0); r != nil {
		return r.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Get(ctx context.Context, requester access.Requester, id int64) (*services.AnnotatedResource, error) {
	args := m.Called(ctx, requester, id)
	if r := args.Get(0); r != nil {
		return r.(*services.AnnotatedResource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Update(ctx context.Context, requester access.Requester, id int64, input services.UpdateResourceInput) (*models.Resource, error) {
	args := m.Called(ctx, requester, id, input)
	if r := args.Get(0); r != nil {
		return r.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Delete(ctx context.Context, requester access.Requester, id int64) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}

func (m *mockResourceService) RecordVerification(ctx context.Context, requester access.Requester, resourceID int64, input services.VerificationInput) (*models.VerificationEvent, error) {
	args := m.Called(ctx, requester, resourceID, input)
	if r := args.Get(0); r != nil {
		return r.(*models.VerificationEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListVerifications(ctx context.Context, requester access.Requester, resourceID int64) ([]models.VerificationEvent, error) {
	args := m.Called(ctx, requester, resourceID)
	if r := args.Get(0); r != nil {
		return r.([]models.VerificationEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) ListStale(ctx context.Context, requester access.Requester, limit int) ([]models.Resource, error) {
	args := m.Called(ctx, requester, limit)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Counties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockReportService is a testify mock of services.ReportService.
type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Submit(ctx context.Context, requester access.Requester, resourceID int64, input services.ReportInput) (*models.CommunityReport, error) {
	args := m.Called(ctx, requester, resourceID, input)
	if r := args.Get(0); r != nil {
		return r.(*models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) Review(ctx context.Context, requester access.Requester, reportID int64, input services.ReviewInput) (*models.CommunityReport, error) {
	args := m.Called(ctx, requester, reportID, input)
	if r := args.Get(0); r != nil {
		return r.(*models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) Pending(ctx context.Context, requester access.Requester, limit, offset int) ([]models.CommunityReport, error) {
	args := m.Called(ctx, requester, limit, offset)
	if r := args.Get(0); r != nil {
		return r.([]models.CommunityReport), args.Error(1)
	}
	return nil, args.Error(1)
}
