package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/northwoods-housing/compass/api/internal/errors"
	"github.com/northwoods-housing/compass/api/internal/middleware"
	"github.com/northwoods-housing/compass/api/internal/models"
	"github.com/northwoods-housing/compass/api/internal/services"
)

// ResourceHandler handles the resource directory endpoints: discovery,
// the resource lifecycle, and the verification workflow.
type ResourceHandler struct {
	discovery services.DiscoveryService
	resources services.ResourceService
}

// NewResourceHandler creates a new ResourceHandler instance.
func NewResourceHandler(discovery services.DiscoveryService, resources services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		discovery: discovery,
		resources: resources,
	}
}

// discoverQuery holds the query parameters for resource discovery.
// lat, lng, and radius_miles travel together; category and county are
// attribute filters.
type discoverQuery struct {
	Lat            *float64 `form:"lat"`
	Lng            *float64 `form:"lng"`
	RadiusMiles    *float64 `form:"radius_miles"`
	Category       *string  `form:"category"`
	County         *string  `form:"county"`
	SeasonalSummer *bool    `form:"seasonal_summer"`
	SeasonalWinter *bool    `form:"seasonal_winter"`
	Limit          int      `form:"limit"`
	Offset         int      `form:"offset"`
}

// Discover handles GET /api/v1/resources.
func (h *ResourceHandler) Discover(c *gin.Context) {
	var query discoverQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	if (query.Lat == nil) != (query.Lng == nil) {
		apierrors.BadRequest(c, "lat and lng must be provided together", nil)
		return
	}

	req := services.DiscoverRequest{
		RadiusMiles:    query.RadiusMiles,
		County:         query.County,
		SeasonalSummer: query.SeasonalSummer,
		SeasonalWinter: query.SeasonalWinter,
		Limit:          query.Limit,
		Offset:         query.Offset,
	}
	if query.Lat != nil {
		req.Center = &models.Point{Lat: *query.Lat, Lng: *query.Lng}
	}
	if query.Category != nil {
		category := models.Category(*query.Category)
		req.Category = &category
	}

	result, err := h.discovery.Discover(c.Request.Context(), middleware.GetRequester(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// createResourceRequest is the JSON body for resource creation.
type createResourceRequest struct {
	Name                  string            `json:"name" binding:"required"`
	Category              models.Category   `json:"category" binding:"required"`
	County                string            `json:"county" binding:"required"`
	AccessTier            models.AccessTier `json:"accessTier"`
	Description           *string           `json:"description"`
	Address               *string           `json:"address"`
	Town                  *string           `json:"town"`
	Phone                 *string           `json:"phone"`
	Email                 *string           `json:"email" binding:"omitempty,email"`
	Website               *string           `json:"website" binding:"omitempty,url"`
	HoursOfOperation      *string           `json:"hoursOfOperation"`
	Restrictions          *string           `json:"restrictions"`
	CostInfo              *string           `json:"costInfo"`
	Location              *models.Point     `json:"location"`
	Capacity              *int              `json:"capacity" binding:"omitempty,gte=0"`
	LanguagesSupported    []string          `json:"languagesSupported"`
	DumpStationFee        *float64          `json:"dumpStationFee" binding:"omitempty,gte=0"`
	PropanePricePerGallon *float64          `json:"propanePricePerGallon" binding:"omitempty,gte=0"`
	CampingNightlyRate    *float64          `json:"campingNightlyRate" binding:"omitempty,gte=0"`
	SeasonalSummer        bool              `json:"seasonalSummer"`
	SeasonalWinter        bool              `json:"seasonalWinter"`
}

// Create handles POST /api/v1/resources.
func (h *ResourceHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resource, err := h.resources.Create(c.Request.Context(), middleware.GetRequester(c), services.CreateResourceInput{
		Name:                  req.Name,
		Category:              req.Category,
		County:                req.County,
		AccessTier:            req.AccessTier,
		Description:           req.Description,
		Address:               req.Address,
		Town:                  req.Town,
		Phone:                 req.Phone,
		Email:                 req.Email,
		Website:               req.Website,
		HoursOfOperation:      req.HoursOfOperation,
		Restrictions:          req.Restrictions,
		CostInfo:              req.CostInfo,
		Location:              req.Location,
		Capacity:              req.Capacity,
		LanguagesSupported:    req.LanguagesSupported,
		DumpStationFee:        req.DumpStationFee,
		PropanePricePerGallon: req.PropanePricePerGallon,
		CampingNightlyRate:    req.CampingNightlyRate,
		SeasonalSummer:        req.SeasonalSummer,
		SeasonalWinter:        req.SeasonalWinter,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// Get handles GET /api/v1/resources/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	annotated, err := h.resources.Get(c.Request.Context(), middleware.GetRequester(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, annotated)
}

// updateResourceRequest is the JSON body for a partial resource edit.
// Omitted fields stay as they are.
type updateResourceRequest struct {
	Name                  *string       `json:"name"`
	Description           *string       `json:"description"`
	Address               *string       `json:"address"`
	Town                  *string       `json:"town"`
	Phone                 *string       `json:"phone"`
	Email                 *string       `json:"email" binding:"omitempty,email"`
	Website               *string       `json:"website" binding:"omitempty,url"`
	HoursOfOperation      *string       `json:"hoursOfOperation"`
	Restrictions          *string       `json:"restrictions"`
	CostInfo              *string       `json:"costInfo"`
	Location              *models.Point `json:"location"`
	Capacity              *int          `json:"capacity" binding:"omitempty,gte=0"`
	LanguagesSupported    []string      `json:"languagesSupported"`
	DumpStationFee        *float64      `json:"dumpStationFee" binding:"omitempty,gte=0"`
	PropanePricePerGallon *float64      `json:"propanePricePerGallon" binding:"omitempty,gte=0"`
	CampingNightlyRate    *float64      `json:"campingNightlyRate" binding:"omitempty,gte=0"`
	SeasonalSummer        *bool         `json:"seasonalSummer"`
	SeasonalWinter        *bool         `json:"seasonalWinter"`
}

// Update handles PATCH /api/v1/resources/:id.
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resource, err := h.resources.Update(c.Request.Context(), middleware.GetRequester(c), id, services.UpdateResourceInput{
		Name:                  req.Name,
		Description:           req.Description,
		Address:               req.Address,
		Town:                  req.Town,
		Phone:                 req.Phone,
		Email:                 req.Email,
		Website:               req.Website,
		HoursOfOperation:      req.HoursOfOperation,
		Restrictions:          req.Restrictions,
		CostInfo:              req.CostInfo,
		Location:              req.Location,
		Capacity:              req.Capacity,
		LanguagesSupported:    req.LanguagesSupported,
		DumpStationFee:        req.DumpStationFee,
		PropanePricePerGallon: req.PropanePricePerGallon,
		CampingNightlyRate:    req.CampingNightlyRate,
		SeasonalSummer:        req.SeasonalSummer,
		SeasonalWinter:        req.SeasonalWinter,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Delete handles DELETE /api/v1/resources/:id.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.resources.Delete(c.Request.Context(), middleware.GetRequester(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// verificationRequest is the JSON body for recording a verification event.
type verificationRequest struct {
	Method          models.VerificationMethod `json:"method" binding:"required"`
	ConfidenceScore *int                      `json:"confidenceScore" binding:"required,gte=0,lte=100"`
	Notes           *string                   `json:"notes"`
	Source          *string                   `json:"source"`
}

// RecordVerification handles POST /api/v1/resources/:id/verifications.
func (h *ResourceHandler) RecordVerification(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	event, err := h.resources.RecordVerification(c.Request.Context(), middleware.GetRequester(c), id, services.VerificationInput{
		Method:          req.Method,
		ConfidenceScore: *req.ConfidenceScore,
		Notes:           req.Notes,
		Source:          req.Source,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListVerifications handles GET /api/v1/resources/:id/verifications.
func (h *ResourceHandler) ListVerifications(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	events, err := h.resources.ListVerifications(c.Request.Context(), middleware.GetRequester(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": events})
}

// ListStale handles GET /api/v1/resources/stale.
func (h *ResourceHandler) ListStale(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		apierrors.BadRequest(c, "limit must be an integer", nil)
		return
	}

	stale, err := h.resources.ListStale(c.Request.Context(), middleware.GetRequester(c), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": stale})
}

// parseIDParam reads the :id path parameter. Writes the error response
// itself and reports false when the parameter is not a positive integer.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
