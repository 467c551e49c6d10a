package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/middleware"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupResourceRouter(discovery *mockDiscoveryService, resources *mockResourceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Requester())

	handler := NewResourceHandler(discovery, resources)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/resources", handler.Discover)
		v1.POST("/resources", handler.Create)
		v1.GET("/resources/stale", handler.ListStale)
		v1.GET("/resources/:id", handler.Get)
		v1.PATCH("/resources/:id", handler.Update)
		v1.DELETE("/resources/:id", handler.Delete)
		v1.POST("/resources/:id/verifications", handler.RecordVerification)
		v1.GET("/resources/:id/verifications", handler.ListVerifications)
	}
	return router
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func verifierHeaders(userID string) map[string]string {
	return map[string]string{
		middleware.AccessTierHeader: string(models.TierTrustedVerifier),
		middleware.UserIDHeader:     userID,
	}
}

func TestDiscoverEndpoint_PassesQueryToService(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	discovery.On("Discover", mock.Anything, mock.Anything, mock.MatchedBy(func(req services.DiscoverRequest) bool {
		return req.Center != nil &&
			req.Center.Lat == 45.0042 &&
			req.Center.Lng == -84.1434 &&
			req.RadiusMiles != nil && *req.RadiusMiles == 25 &&
			req.Category != nil && *req.Category == models.CategoryFood &&
			req.Limit == 10 && req.Offset == 5
	})).Return(&services.DiscoverResult{Items: []services.AnnotatedResource{}, Limit: 10, Offset: 5}, nil)

	w := doJSON(router, http.MethodGet,
		"/api/v1/resources?lat=45.0042&lng=-84.1434&radius_miles=25&category=food&limit=10&offset=5",
		nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	discovery.AssertExpectations(t)
}

func TestDiscoverEndpoint_LatWithoutLng(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	w := doJSON(router, http.MethodGet, "/api/v1/resources?lat=45.0", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	discovery.AssertNotCalled(t, "Discover", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscoverEndpoint_ServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid geometry", services.ErrInvalidGeometry, http.StatusBadRequest},
		{"invalid input", services.ErrInvalidInput, http.StatusBadRequest},
		{"unavailable", services.ErrUnavailable, http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discovery := new(mockDiscoveryService)
			resources := new(mockResourceService)
			router := setupResourceRouter(discovery, resources)

			discovery.On("Discover", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err)

			w := doJSON(router, http.MethodGet, "/api/v1/resources", nil, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDiscoverEndpoint_ForwardsRequesterTier(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	discovery.On("Discover", mock.Anything, mock.MatchedBy(func(r access.Requester) bool {
		return r.Tier == models.TierAdmin
	}), mock.Anything).Return(&services.DiscoverResult{Items: []services.AnnotatedResource{}}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/resources", nil, map[string]string{
		middleware.AccessTierHeader: string(models.TierAdmin),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	discovery.AssertExpectations(t)
}

func TestCreateEndpoint(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	created := &models.Resource{ID: 10, Name: "Pantry", Category: models.CategoryFood, County: "Otsego"}
	resources.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(in services.CreateResourceInput) bool {
		return in.Name == "Pantry" && in.Category == models.CategoryFood && in.County == "Otsego"
	})).Return(created, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/resources", gin.H{
		"name":     "Pantry",
		"category": "food",
		"county":   "Otsego",
	}, verifierHeaders("5"))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resource models.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resource))
	assert.Equal(t, int64(10), resource.ID)
}

func TestCreateEndpoint_MissingRequiredFields(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	w := doJSON(router, http.MethodPost, "/api/v1/resources", gin.H{
		"name": "Pantry",
	}, verifierHeaders("5"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resources.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEndpoint_AccessDenied(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	resources.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrAccessDenied)

	w := doJSON(router, http.MethodPost, "/api/v1/resources", gin.H{
		"name":     "Pantry",
		"category": "food",
		"county":   "Otsego",
	}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetEndpoint(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	annotated := &services.AnnotatedResource{
		Resource:   models.Resource{ID: 3, Name: "Pantry"},
		Confidence: 50,
		Stale:      true,
	}
	resources.On("Get", mock.Anything, mock.Anything, int64(3)).Return(annotated, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/resources/3", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body services.AnnotatedResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Resource.ID)
	assert.True(t, body.Stale)
}

func TestGetEndpoint_NotFound(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	resources.On("Get", mock.Anything, mock.Anything, int64(99)).
		Return(nil, services.ErrResourceNotFound)

	w := doJSON(router, http.MethodGet, "/api/v1/resources/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEndpoint_BadID(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	w := doJSON(router, http.MethodGet, "/api/v1/resources/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resources.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteEndpoint(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	resources.On("Delete", mock.Anything, mock.Anything, int64(3)).Return(nil)

	w := doJSON(router, http.MethodDelete, "/api/v1/resources/3", nil, map[string]string{
		middleware.AccessTierHeader: string(models.TierAdmin),
		middleware.UserIDHeader:     "1",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecordVerificationEndpoint(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	event := &models.VerificationEvent{ID: 7, ResourceID: 3, Method: models.MethodManualPhysical, ConfidenceScore: 90}
	resources.On("RecordVerification", mock.Anything, mock.Anything, int64(3), services.VerificationInput{
		Method:          models.MethodManualPhysical,
		ConfidenceScore: 90,
	}).Return(event, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/resources/3/verifications", gin.H{
		"method":          "manual_physical",
		"confidenceScore": 90,
	}, verifierHeaders("8"))

	assert.Equal(t, http.StatusCreated, w.Code)
	resources.AssertExpectations(t)
}

func TestRecordVerificationEndpoint_ScoreOutOfRange(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	w := doJSON(router, http.MethodPost, "/api/v1/resources/3/verifications", gin.H{
		"method":          "manual_physical",
		"confidenceScore": 150,
	}, verifierHeaders("8"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resources.AssertNotCalled(t, "RecordVerification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListStaleEndpoint(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	resources.On("ListStale", mock.Anything, mock.Anything, 25).
		Return([]models.Resource{{ID: 1}}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/resources/stale?limit=25", nil, verifierHeaders("8"))

	assert.Equal(t, http.StatusOK, w.Code)
	resources.AssertExpectations(t)
}

func TestListStaleEndpoint_Denied(t *testing.T) {
	discovery := new(mockDiscoveryService)
	resources := new(mockResourceService)
	router := setupResourceRouter(discovery, resources)

	resources.On("ListStale", mock.Anything, mock.Anything, 0).
		Return(nil, services.ErrAccessDenied)

	w := doJSON(router, http.MethodGet, "/api/v1/resources/stale", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
