package preferences

import (
	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/aidmatch/trust-engine/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler exposes the preference filter over HTTP
type Handler struct{}

// NewHandler creates a new preferences handler
func NewHandler() *Handler {
	return &Handler{}
}

// FilterProviders applies a preference profile to an inline provider snapshot
// POST /api/v1/preferences/filter
func (h *Handler) FilterProviders(c *gin.Context) {
	var req FilterRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	common.SuccessResponse(c, Apply(req.Providers, req.Preferences))
}

// RegisterRoutes registers preference routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/preferences/filter", h.FilterProviders)
}
