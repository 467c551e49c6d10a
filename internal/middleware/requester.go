package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/northwoods-housing/compass/api/internal/access"
	"github.com/northwoods-housing/compass/api/internal/models"
)

const (
	// RequesterKey is the context key for the resolved requester.
	RequesterKey = "requester"
	// AccessTierHeader carries the requester's access tier, set by the
	// upstream auth layer after session validation.
	AccessTierHeader = "X-Access-Tier"
	// UserIDHeader carries the authenticated user's id, set by the
	// upstream auth layer. Absent for anonymous requests.
	UserIDHeader = "X-User-ID"
)

// Requester resolves the requester identity from the trusted auth
// headers. A missing, empty, or unknown tier always resolves to public;
// elevation only ever comes from an explicit, valid tier value.
func Requester() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := access.Anonymous()

		if tier := models.AccessTier(c.GetHeader(AccessTierHeader)); tier.Valid() {
			req.Tier = tier
		}

		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				req.UserID = &id
			}
		}

		c.Set(RequesterKey, req)
		c.Next()
	}
}

// GetRequester retrieves the resolved requester from the Gin context.
// Falls back to the anonymous public requester if the middleware did not
// run, so a missing auth layer can never elevate anyone.
func GetRequester(c *gin.Context) access.Requester {
	if v, exists := c.Get(RequesterKey); exists {
		if req, ok := v.(access.Requester); ok {
			return req
		}
	}
	return access.Anonymous()
}
