package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/northwoods-housing/compass/api/internal/services"
)

// LookupHandler serves the small enumeration endpoints used to populate
// search filters: counties and categories derived from live data.
type LookupHandler struct {
	resources services.ResourceService
}

// NewLookupHandler creates a new LookupHandler instance.
func NewLookupHandler(resources services.ResourceService) *LookupHandler {
	return &LookupHandler{
		resources: resources,
	}
}

// Counties handles GET /api/v1/lookups/counties.
func (h *LookupHandler) Counties(c *gin.Context) {
	counties, err := h.resources.Counties(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": counties})
}

// Categories handles GET /api/v1/lookups/categories.
func (h *LookupHandler) Categories(c *gin.Context) {
	categories, err := h.resources.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": categories})
}
