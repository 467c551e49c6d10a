package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/northwoods-housing/compass/api/internal/middleware"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReportRouter(reports *mockReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Requester())

	handler := NewReportHandler(reports)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/resources/:id/reports", handler.Submit)
		v1.POST("/reports/:id/review", handler.Review)
		v1.GET("/reports/pending", handler.Pending)
	}
	return router
}

func adminHeaders() map[string]string {
	return map[string]string{
		middleware.AccessTierHeader: string(models.TierAdmin),
		middleware.UserIDHeader:     "1",
	}
}

func TestSubmitReportEndpoint(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	created := &models.CommunityReport{ID: 20, ResourceID: 3, Kind: models.ReportClosed, Status: models.StatusPending}
	reports.On("Submit", mock.Anything, mock.Anything, int64(3), mock.MatchedBy(func(in services.ReportInput) bool {
		return in.Kind == models.ReportClosed
	})).Return(created, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/resources/3/reports", gin.H{
		"kind": "closed",
	}, map[string]string{
		middleware.AccessTierHeader: string(models.TierVerifiedUser),
		middleware.UserIDHeader:     "5",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var report models.CommunityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, models.StatusPending, report.Status)
}

func TestSubmitReportEndpoint_MissingKind(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	w := doJSON(router, http.MethodPost, "/api/v1/resources/3/reports", gin.H{
		"details": "no kind given",
	}, adminHeaders())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reports.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewEndpoint(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	reviewed := &models.CommunityReport{ID: 20, Status: models.StatusReviewed}
	reports.On("Review", mock.Anything, mock.Anything, int64(20), services.ReviewInput{
		Status: models.StatusReviewed,
	}).Return(reviewed, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/reports/20/review", gin.H{
		"status": "reviewed",
	}, adminHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	reports.AssertExpectations(t)
}

func TestReviewEndpoint_InvalidTransitionIsConflict(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	reports.On("Review", mock.Anything, mock.Anything, int64(20), mock.Anything).
		Return(nil, services.ErrInvalidTransition)

	w := doJSON(router, http.MethodPost, "/api/v1/reports/20/review", gin.H{
		"status": "reviewed",
	}, adminHeaders())

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewEndpoint_Denied(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	reports.On("Review", mock.Anything, mock.Anything, int64(20), mock.Anything).
		Return(nil, services.ErrAccessDenied)

	w := doJSON(router, http.MethodPost, "/api/v1/reports/20/review", gin.H{
		"status": "reviewed",
	}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewEndpoint_Missing(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	reports.On("Review", mock.Anything, mock.Anything, int64(99), mock.Anything).
		Return(nil, services.ErrReportNotFound)

	w := doJSON(router, http.MethodPost, "/api/v1/reports/99/review", gin.H{
		"status": "reviewed",
	}, adminHeaders())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPendingEndpoint(t *testing.T) {
	reports := new(mockReportService)
	router := setupReportRouter(reports)

	queue := []models.CommunityReport{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusPending},
	}
	reports.On("Pending", mock.Anything, mock.Anything, 10, 5).Return(queue, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/reports/pending?limit=10&offset=5", nil, adminHeaders())

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []models.CommunityReport `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
}

func TestLookupEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resources := new(mockResourceService)
	router := gin.New()

	handler := NewLookupHandler(resources)
	router.GET("/api/v1/lookups/counties", handler.Counties)
	router.GET("/api/v1/lookups/categories", handler.Categories)

	resources.On("Counties", mock.Anything).Return([]string{"Crawford", "Otsego"}, nil)
	resources.On("Categories", mock.Anything).Return([]models.Category{models.CategoryFood, models.CategoryShelter}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/lookups/counties", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var counties struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counties))
	assert.Equal(t, []string{"Crawford", "Otsego"}, counties.Items)

	w = doJSON(router, http.MethodGet, "/api/v1/lookups/categories", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
