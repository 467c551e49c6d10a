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

// ReportHandler handles the community report endpoints.
type ReportHandler struct {
	reports services.ReportService
}

// NewReportHandler creates a new ReportHandler instance.
func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{
		reports: reports,
	}
}

// submitReportRequest is the JSON body for filing a community report.
type submitReportRequest struct {
	Kind    models.ReportKind `json:"kind" binding:"required"`
	Details *string           `json:"details"`
}

// Submit handles POST /api/v1/resources/:id/reports.
func (h *ReportHandler) Submit(c *gin.Context) {
	resourceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), middleware.GetRequester(c), resourceID, services.ReportInput{
		Kind:    req.Kind,
		Details: req.Details,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// reviewReportRequest is the JSON body for a moderation decision.
type reviewReportRequest struct {
	Status     models.ReportStatus `json:"status" binding:"required"`
	AdminNotes *string             `json:"adminNotes"`
}

// Review handles POST /api/v1/reports/:id/review.
func (h *ReportHandler) Review(c *gin.Context) {
	reportID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	report, err := h.reports.Review(c.Request.Context(), middleware.GetRequester(c), reportID, services.ReviewInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Pending handles GET /api/v1/reports/pending.
func (h *ReportHandler) Pending(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		apierrors.BadRequest(c, "limit must be an integer", nil)
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		apierrors.BadRequest(c, "offset must be an integer", nil)
		return
	}

	reports, err := h.reports.Pending(c.Request.Context(), middleware.GetRequester(c), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": reports})
}
