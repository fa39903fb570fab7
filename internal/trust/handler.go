package trust

import (
	"net/http"

	"github.com/aidmatch/trust-engine/pkg/common"
	"github.com/gin-gonic/gin"
)

// Handler exposes the trust score calculator over HTTP
type Handler struct{}

// NewHandler creates a new trust handler
func NewHandler() *Handler {
	return &Handler{}
}

// ComputeScore returns the trust score, tier and weighted breakdown for a set of factors.
// Out-of-range factors are clamped, so any well-formed body succeeds.
// POST /api/v1/trust/score
func (h *Handler) ComputeScore(c *gin.Context) {
	var factors TrustFactors
	if err := c.ShouldBindJSON(&factors); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trust factors: "+err.Error())
		return
	}

	common.SuccessResponse(c, Breakdown(factors))
}

// RegisterRoutes registers trust routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/trust/score", h.ComputeScore)
}
